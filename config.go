package siggn

// DefaultIDPrefix prefixes identities generated by [Bus.MakeID].
const DefaultIDPrefix = "sub_"

// Config configures a Bus. The zero value is usable.
type Config struct {
	// Name identifies the bus in logs, metrics and traces. Optional.
	Name string `yaml:"name"`

	// IDPrefix prefixes generated subscriber identities.
	// Defaults to DefaultIDPrefix.
	IDPrefix string `yaml:"id_prefix"`

	// DisableRecover lets listener panics propagate to the publisher instead
	// of being recovered, logged and returned from Publish.
	DisableRecover bool `yaml:"disable_recover"`

	// Logger receives bus diagnostics. Defaults to DefaultLogger().
	Logger Logger `yaml:"-"`
}

func (c Config) parse() Config {
	if c.IDPrefix == "" {
		c.IDPrefix = DefaultIDPrefix
	}
	if c.Logger == nil {
		c.Logger = DefaultLogger()
	}
	return c
}
