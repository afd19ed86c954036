package reverb

var (
	Debug   = false // set to true for verbose debug output
	Workers = 0     // worker pool size override, 0 means runtime.NumCPU()
)
