package config

import (
	"resumelens/internal/types"
)

// applyOperationDefaults applies global defaults to task-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
}

// GetFeedbackConfig returns the AI configuration for the feedback task with
// fallback to global values.
func (c *Config) GetFeedbackConfig() OperationAIConfig {
	config := c.AI.Feedback
	c.applyOperationDefaults(&config)
	return config
}

// GetStructureConfig returns the AI configuration for the structured parse
// task with fallback to global values.
func (c *Config) GetStructureConfig() OperationAIConfig {
	config := c.AI.Structure
	c.applyOperationDefaults(&config)
	return config
}

// GetAtsConfig returns the AI configuration for the ATS/jargon task with
// fallback to global values.
func (c *Config) GetAtsConfig() OperationAIConfig {
	config := c.AI.Ats
	c.applyOperationDefaults(&config)
	return config
}

// GetTaskConfig dispatches to the task-specific getter.
func (c *Config) GetTaskConfig(task types.AnalysisTask) OperationAIConfig {
	switch task {
	case types.TaskStructuredParse:
		return c.GetStructureConfig()
	case types.TaskAtsJargon:
		return c.GetAtsConfig()
	default:
		return c.GetFeedbackConfig()
	}
}
