package storage

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadEnvironment loads environment variables from a YAML file.
// Values may reference process variables as {{env:NAME}}.
func LoadEnvironment(filePath string) (map[string]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	var env map[string]string
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse environment YAML: %w", err)
	}
	if env == nil {
		env = make(map[string]string)
	}

	for key, value := range env {
		env[key] = SubstituteVariables(value, nil)
	}

	return env, nil
}

// SaveEnvironment saves environment variables to a YAML file
func SaveEnvironment(env map[string]string, filePath string) error {
	data, err := yaml.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal environment: %w", err)
	}
	return writeYAML(withYAMLExt(filePath), data)
}

// ListEnvironments lists the environment names under baseDir.
func ListEnvironments(baseDir string) ([]string, error) {
	return listYAML(GetEnvironmentsDir(baseDir), false)
}

// EnvironmentPath returns the file path of the named environment.
func EnvironmentPath(baseDir, name string) string {
	return namedYAML(GetEnvironmentsDir(baseDir), name)
}

// SubstituteVariables replaces {{VAR}} placeholders with values from env
// and {{env:VAR}} with process environment variables. Unknown placeholders
// are left untouched.
func SubstituteVariables(text string, env map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}"))

		if sysVar, ok := strings.CutPrefix(varName, "env:"); ok {
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
			return match
		}

		if val, ok := env[varName]; ok {
			return val
		}
		return match
	})
}

// ApplyEnvironment returns a copy of req with variables substituted in the
// URL, header values, query values and every string in the body.
func ApplyEnvironment(req *Request, env map[string]string) *Request {
	sub := func(s string) string { return SubstituteVariables(s, env) }

	applied := &Request{
		Name:   req.Name,
		Method: req.Method,
		URL:    sub(req.URL),
		Body:   req.Body.mapScalars(sub),
	}

	if len(req.Headers) > 0 {
		applied.Headers = make(HeaderMap, len(req.Headers))
		for i, h := range req.Headers {
			applied.Headers[i] = h
			applied.Headers[i].Value = sub(h.Value)
		}
	}

	if len(req.Query) > 0 {
		applied.Query = make(map[string]string, len(req.Query))
		for k, v := range req.Query {
			applied.Query[k] = sub(v)
		}
	}

	return applied
}
