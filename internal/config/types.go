package config

type Credentials struct {
	User     string `hcl:"user"`
	Password string `hcl:"password"`
}

type Host struct {
	Hostname string `hcl:"hostname"`
	Port     string `hcl:"port"`
}

// Probe describes a binary to look for in a list of directories, plus any
// literal paths that should be checked as well.
type Probe struct {
	Name        string   `hcl:",key"`
	Binary      string   `hcl:"binary"`
	Directories []string `hcl:"directories"`
	Paths       []string `hcl:"paths"`
}

type Mounts struct {
	File  string   `hcl:"file"`
	Paths []string `hcl:"paths"`
}

type Publish struct {
	Kind        string `hcl:",key"`
	Credentials `hcl:",squash"`
	Host        `hcl:",squash"`

	// redis
	Channel  string `hcl:"channel"`
	Database int    `hcl:"database"`

	// amqp
	VirtualHost string `hcl:"virtualHost"`
	Exchange    string `hcl:"exchange"`
	RoutingKey  string `hcl:"routingKey"`
}

type Ignition struct {
	Debug      *bool     `hcl:"debug"` // bool-pointer to make "true" the default
	SearchPath *bool     `hcl:"searchPath"`
	Probes     []Probe   `hcl:"probe"`
	Mounts     *Mounts   `hcl:"mounts"`
	Publishers []Publish `hcl:"publish"`
}

func (i *Ignition) DebugEnabled() bool {
	return i.Debug == nil || *i.Debug
}

func (i *Ignition) SearchPathEnabled() bool {
	return i.SearchPath == nil || *i.SearchPath
}
