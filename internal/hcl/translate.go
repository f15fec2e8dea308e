package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/fileopen/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// translate converts the HCL-specific schema into the agnostic model.
func (r *fileRoot) translate() *config.Settings {
	s := &config.Settings{NotFoundExitCode: r.NotFoundExitCode}
	if r.Logging != nil {
		if r.Logging.Level != nil {
			s.LogLevel = strings.ToLower(*r.Logging.Level)
		}
		if r.Logging.Format != nil {
			s.LogFormat = strings.ToLower(*r.Logging.Format)
		}
	}
	return s
}

// newEvalContext exposes the environment as the `env` object along with a
// few string helpers.
func (l *Loader) newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, e := range l.environ() {
		name, value, ok := strings.Cut(e, "=")
		if ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
			"coalesce": stdlib.CoalesceFunc,
		},
	}
}
