// Package config loads YAML condition files for the waitfor command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/y0f/waitfor"
)

type Config struct {
	Interval Duration `yaml:"interval"`
	Timeout  Duration `yaml:"timeout"`
	Wait     *Node    `yaml:"wait"`
}

func Defaults() *Config {
	return &Config{Interval: Duration(time.Second)}
}

func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Wait == nil {
		return fmt.Errorf("wait is required")
	}
	return nil
}

// Node is one node of the condition expression. Exactly one field may be
// set per node.
type Node struct {
	Any []Node `yaml:"any"`
	All []Node `yaml:"all"`
	Not *Node  `yaml:"not"`

	Elapsed       *Duration          `yaml:"elapsed"`
	Exists        string             `yaml:"exists"`
	Updated       string             `yaml:"updated"`
	UpdatedWithin *UpdatedWithinNode `yaml:"updated_within"`
	TCP           string             `yaml:"tcp"`
	HTTP          *HTTPNode          `yaml:"http"`
	Ping          string             `yaml:"ping"`
	WebSocket     string             `yaml:"websocket"`
}

type UpdatedWithinNode struct {
	Path   string   `yaml:"path"`
	Window Duration `yaml:"window"`
}

type HTTPNode struct {
	URL    string `yaml:"url"`
	Status []int  `yaml:"status"`
}

// Build turns a node into a condition. File baselines are captured here,
// before polling starts.
func (n *Node) Build() (waitfor.Condition, error) {
	if count := n.fieldsSet(); count != 1 {
		return nil, fmt.Errorf("condition node must set exactly one field, has %d", count)
	}

	switch {
	case len(n.Any) > 0:
		conds, err := buildAll(n.Any)
		if err != nil {
			return nil, err
		}
		return waitfor.Or(conds...), nil

	case len(n.All) > 0:
		conds, err := buildAll(n.All)
		if err != nil {
			return nil, err
		}
		return waitfor.And(conds...), nil

	case n.Not != nil:
		inner, err := n.Not.Build()
		if err != nil {
			return nil, err
		}
		return waitfor.Not(inner), nil

	case n.Elapsed != nil:
		return waitfor.Elapsed(n.Elapsed.Std(), false), nil

	case n.Exists != "":
		return waitfor.Exists(n.Exists, false), nil

	case n.Updated != "":
		return waitfor.FileUpdated(n.Updated, false), nil

	case n.UpdatedWithin != nil:
		if n.UpdatedWithin.Path == "" {
			return nil, fmt.Errorf("updated_within: path is required")
		}
		if n.UpdatedWithin.Window <= 0 {
			return nil, fmt.Errorf("updated_within: window must be positive")
		}
		return waitfor.UpdatedWithin(n.UpdatedWithin.Path, n.UpdatedWithin.Window.Std(), false), nil

	case n.TCP != "":
		return waitfor.TCP(n.TCP, false)

	case n.HTTP != nil:
		return waitfor.HTTP(n.HTTP.URL, false, n.HTTP.Status...)

	case n.Ping != "":
		return waitfor.Ping(n.Ping, false), nil

	default:
		return waitfor.WebSocket(n.WebSocket, false)
	}
}

func buildAll(nodes []Node) ([]waitfor.Condition, error) {
	conds := make([]waitfor.Condition, 0, len(nodes))
	for i := range nodes {
		c, err := nodes[i].Build()
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func (n *Node) fieldsSet() int {
	count := 0
	if len(n.Any) > 0 {
		count++
	}
	if len(n.All) > 0 {
		count++
	}
	if n.Not != nil {
		count++
	}
	if n.Elapsed != nil {
		count++
	}
	if n.Exists != "" {
		count++
	}
	if n.Updated != "" {
		count++
	}
	if n.UpdatedWithin != nil {
		count++
	}
	if n.TCP != "" {
		count++
	}
	if n.HTTP != nil {
		count++
	}
	if n.Ping != "" {
		count++
	}
	if n.WebSocket != "" {
		count++
	}
	return count
}
