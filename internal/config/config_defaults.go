package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 2)
	v.SetDefault("ai.temperature", 0.3)

	// Outbound request throttling shared by all tasks
	v.SetDefault("ai.rateLimit.enabled", true)
	v.SetDefault("ai.rateLimit.requestsPerMin", 30)
	v.SetDefault("ai.rateLimit.burstCapacity", 3)

	// AI Configuration - Feedback task defaults
	v.SetDefault("ai.feedback.provider", "gemini")
	v.SetDefault("ai.feedback.model", "")
	v.SetDefault("ai.feedback.timeout", 60*time.Second)
	v.SetDefault("ai.feedback.apiKey", "")
	v.SetDefault("ai.feedback.maxRetries", 2)
	v.SetDefault("ai.feedback.temperature", 0.3)

	// AI Configuration - Structured parse task defaults. Extraction wants
	// the lowest temperature and tolerates one more retry since its output
	// is the largest.
	v.SetDefault("ai.structure.provider", "gemini")
	v.SetDefault("ai.structure.model", "")
	v.SetDefault("ai.structure.timeout", 90*time.Second)
	v.SetDefault("ai.structure.apiKey", "")
	v.SetDefault("ai.structure.maxRetries", 3)
	v.SetDefault("ai.structure.temperature", 0.1)

	// AI Configuration - ATS/jargon task defaults
	v.SetDefault("ai.ats.provider", "gemini")
	v.SetDefault("ai.ats.model", "")
	v.SetDefault("ai.ats.timeout", 60*time.Second)
	v.SetDefault("ai.ats.apiKey", "")
	v.SetDefault("ai.ats.maxRetries", 2)
	v.SetDefault("ai.ats.temperature", 0.2)

	// Circuit breaker defaults for all tasks
	for _, task := range []string{"feedback", "structure", "ats"} {
		v.SetDefault("ai."+task+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+task+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+task+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+task+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+task+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+task+".circuitBreaker.failureThreshold", 0.6)
	}

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 5*1024*1024) // 5MB

	// Report Configuration
	v.SetDefault("report.title", "Resume Analysis Report")
	v.SetDefault("report.pageSize", "A4")
	v.SetDefault("report.font", "Helvetica")
}
