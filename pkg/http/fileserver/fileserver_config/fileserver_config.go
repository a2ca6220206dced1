package fileserver_config

var (
	DefaultAddress = ":8000"
	DefaultRoot    = "."
)

type Config struct {
	Address string
	Root    string
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{
		Address: DefaultAddress,
		Root:    DefaultRoot,
	}
	for _, option := range options {
		option(config)
	}

	return config
}

func WithAddress(address string) Option {
	return func(config *Config) {
		config.Address = address
	}
}

func WithRoot(root string) Option {
	return func(config *Config) {
		config.Root = root
	}
}
