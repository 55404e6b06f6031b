package topicmgr

import "maps"

// TopicScope says who owns a topic.
type TopicScope string

const (
	// ScopeFramework topics belong to core services and carry no module.
	ScopeFramework TopicScope = "framework"
	ScopeModule    TopicScope = "module"
)

// Topic is a declared bus topic as seen by the catalogue.
type Topic interface {
	Name() string
	// Module is empty for framework topics.
	Module() string
	Description() string
	Pattern() string
	Scope() TopicScope
	// Metadata returns a copy.
	Metadata() map[string]interface{}
}

// TopicConfig describes a topic before it is defined.
type TopicConfig struct {
	Name        string                 `json:"name"`
	Module      string                 `json:"module"`
	Scope       TopicScope             `json:"scope"`
	Description string                 `json:"description"`
	Pattern     string                 `json:"pattern"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// DefineFramework creates a topic owned by a core service. Any module in
// config is discarded.
func DefineFramework(config TopicConfig) Topic {
	config.Scope = ScopeFramework
	config.Module = ""
	return definition{config}
}

// DefineModule creates a topic owned by config.Module.
func DefineModule(config TopicConfig) Topic {
	config.Scope = ScopeModule
	return definition{config}
}

type definition struct{ cfg TopicConfig }

func (d definition) Name() string        { return d.cfg.Name }
func (d definition) Module() string      { return d.cfg.Module }
func (d definition) Description() string { return d.cfg.Description }
func (d definition) Pattern() string     { return d.cfg.Pattern }
func (d definition) Scope() TopicScope   { return d.cfg.Scope }
func (d definition) String() string      { return d.cfg.Name }

func (d definition) Metadata() map[string]interface{} {
	out := make(map[string]interface{}, len(d.cfg.Metadata))
	maps.Copy(out, d.cfg.Metadata)
	return out
}
