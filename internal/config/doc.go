// Package config loads the agent's configuration from the environment.
//
// Two variables are recognized:
//
//	PORT            HTTP listen port (default 5000)
//	FIB_ITERATIONS  default iteration budget for load tasks (default 500000)
//
// There is deliberately no config file and no hot reload: the agent targets
// container platforms where environment variables are the configuration
// surface, and restarts are cheap. FromEnv validates eagerly and returns
// wrapped errors so bad deployments fail at startup instead of at first use.
package config
