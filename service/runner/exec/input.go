package exec

// Host identifies the machine the verification commands run on.
type Host struct {
	URL         string `json:"url,omitempty" description:"host to execute commands on, e.g. bash://localhost/ or ssh://build-01"`
	Credentials string `json:"credentials,omitempty" description:"scy secrets resource providing SSH credentials"`
}

// Input represents a verification command specification.
type Input struct {
	Host      *Host             `json:"host,omitempty" description:"host to execute commands on" internal:"true"`
	Workdir   string            `json:"workdir,omitempty" description:"directory where the verification commands start"`
	Env       map[string]string `json:"env,omitempty" description:"environment variables to be set before commands run"`
	Commands  []string          `json:"commands,omitempty" description:"verification commands; the first non-zero exit fails the attempt"`
	TimeoutMs int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty" description:"max wait time per command before timing out"`
}

func (i *Input) Init() {
	if i.Host == nil {
		i.Host = &Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = "bash://localhost/"
	}
}

func (i *Input) Validate() error {
	if len(i.Commands) == 0 {
		return errNoCommands
	}
	return nil
}
