package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/kika-project/kika-sampling/pkg/jobs"
	"github.com/kika-project/kika-sampling/pkg/models"
)

// SkipPromptsEnv disables interactive prompts when set to "true".
const SkipPromptsEnv = "KIKA_SKIP_PROMPTS"

// PromptForJob builds a configuration of the given kind interactively.
// Current defaults are offered for every field; KIKA_<FIELD> environment
// variables override them. With KIKA_SKIP_PROMPTS=true nothing is asked.
func PromptForJob(kind jobs.Kind) (models.Configuration, error) {
	cfg := kind.New()
	values := make(map[string]interface{})

	for _, param := range kind.Parameters {
		if param.When != "" {
			if on, _ := values[param.When].(bool); !on {
				continue
			}
		}
		if param.Default == nil {
			if v, ok := jobs.Lookup(cfg, param.Name); ok {
				param.Default = v
			}
		}

		value, err := promptForParameter(param)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		values[param.Name] = value
	}

	return jobs.Apply(cfg, values)
}

// EnvKey returns the environment variable that overrides a parameter.
func EnvKey(param jobs.Parameter) string {
	return "KIKA_" + strings.ToUpper(strings.ReplaceAll(param.Name, ".", "_"))
}

// promptForParameter prompts for a single parameter
func promptForParameter(param jobs.Parameter) (interface{}, error) {
	envKey := EnvKey(param)

	// Check if we should skip prompts entirely (for CI/automation)
	if os.Getenv(SkipPromptsEnv) == "true" {
		if envValue := os.Getenv(envKey); envValue != "" {
			return parseEnvValue(envValue, param)
		}
		if param.Required && isEmpty(param.Default) {
			return nil, fmt.Errorf("required parameter %s not provided (set %s)", param.Name, envKey)
		}
		return param.Default, nil
	}

	// Check for environment variable to use as default
	if envValue := os.Getenv(envKey); envValue != "" {
		parsed, err := parseEnvValue(envValue, param)
		if err == nil {
			param.Default = parsed
		}
	}

	switch param.Type {
	case jobs.ParamInteger:
		return promptInteger(param)
	case jobs.ParamFloat:
		return promptFloat(param)
	case jobs.ParamString:
		return promptString(param)
	case jobs.ParamBoolean:
		return promptBoolean(param)
	case jobs.ParamIntList, jobs.ParamFloatList, jobs.ParamStringList:
		return promptList(param)
	case jobs.ParamFiles:
		return promptFiles(param)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// parseEnvValue parses an environment variable value according to the
// parameter type. Lists are comma separated; file pairs are separated by
// semicolons with the covariance path after a comma ("a.ace,a.cov;b.ace,b.cov").
func parseEnvValue(value string, param jobs.Parameter) (interface{}, error) {
	switch param.Type {
	case jobs.ParamInteger:
		return parseInteger(value, param)
	case jobs.ParamFloat:
		return strconv.ParseFloat(strings.TrimSpace(value), 64)
	case jobs.ParamString:
		return value, nil
	case jobs.ParamBoolean:
		return strconv.ParseBool(strings.TrimSpace(value))
	case jobs.ParamIntList, jobs.ParamFloatList, jobs.ParamStringList:
		return parseList(value, param.Type)
	case jobs.ParamFiles:
		return parseFiles(value, param)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

func parseList(value, kind string) (interface{}, error) {
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch kind {
	case jobs.ParamIntList:
		out := make([]int, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q", p)
			}
			out = append(out, v)
		}
		return out, nil
	case jobs.ParamFloatList:
		out := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", p)
			}
			out = append(out, v)
		}
		return out, nil
	default:
		if parts == nil {
			parts = []string{}
		}
		return parts, nil
	}
}

func parseFiles(value string, param jobs.Parameter) ([]models.FileEntry, error) {
	files := []models.FileEntry{}
	for i, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		data, cov, _ := strings.Cut(entry, ",")
		f := models.FileEntry{DataFilePath: strings.TrimSpace(data), CovFilePath: strings.TrimSpace(cov)}
		if f.DataFilePath == "" {
			return nil, fmt.Errorf("%s %d: file path is required", param.Description, i+1)
		}
		files = append(files, f)
	}
	return files, nil
}

func promptInteger(param jobs.Parameter) (interface{}, error) {
	defaultStr := ""
	if param.Default != nil {
		switch v := param.Default.(type) {
		case int:
			defaultStr = strconv.Itoa(v)
		case float64:
			defaultStr = strconv.Itoa(int(v))
		}
	}

	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultStr,
	}
	var opts []survey.AskOpt
	if param.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	} else {
		prompt.Help = "Leave empty or enter none to leave unset"
	}

	var result string
	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		return nil, err
	}
	return parseInteger(result, param)
}

// parseInteger converts an integer answer and checks its range. For an
// optional parameter an empty answer or "none" means unset and yields nil.
func parseInteger(answer string, param jobs.Parameter) (interface{}, error) {
	answer = strings.TrimSpace(answer)
	if !param.Required && (answer == "" || strings.EqualFold(answer, "none")) {
		return nil, nil
	}

	value, err := strconv.Atoi(answer)
	if err != nil {
		return nil, fmt.Errorf("invalid integer: %w", err)
	}

	// Validate range
	if param.Min != nil {
		minRange := toInt(param.Min)
		if value < minRange {
			return nil, fmt.Errorf("value must be at least %d", minRange)
		}
	}
	if param.Max != nil {
		maxRange := toInt(param.Max)
		if value > maxRange {
			return nil, fmt.Errorf("value must be at most %d", maxRange)
		}
	}

	return value, nil
}

func promptFloat(param jobs.Parameter) (float64, error) {
	defaultStr := ""
	if param.Default != nil {
		defaultStr = fmt.Sprintf("%v", param.Default)
	}

	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultStr,
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(result), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	return value, nil
}

func promptString(param jobs.Parameter) (string, error) {
	defaultStr := ""
	if param.Default != nil {
		defaultStr = fmt.Sprintf("%v", param.Default)
	}

	// If options are provided, use a select prompt
	if len(param.Options) > 0 {
		prompt := &survey.Select{
			Message: param.Description,
			Options: param.Options,
			Default: defaultStr,
		}

		var result string
		if err := survey.AskOne(prompt, &result); err != nil {
			return "", err
		}
		return result, nil
	}

	// Otherwise use input prompt
	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultStr,
	}

	var result string
	var validators []survey.Validator
	if param.Required {
		validators = append(validators, survey.Required)
	}

	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return "", err
	}

	return result, nil
}

func promptBoolean(param jobs.Parameter) (bool, error) {
	defaultBool := false
	if param.Default != nil {
		switch v := param.Default.(type) {
		case bool:
			defaultBool = v
		case string:
			defaultBool = v == "true" || v == "yes" || v == "1"
		}
	}

	prompt := &survey.Confirm{
		Message: param.Description,
		Default: defaultBool,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}

	return result, nil
}

func promptList(param jobs.Parameter) (interface{}, error) {
	prompt := &survey.Input{
		Message: param.Description,
		Default: joinList(param.Default),
	}

	var validators []survey.Validator
	if param.Required {
		validators = append(validators, survey.Required)
	}
	validators = append(validators, func(val interface{}) error {
		_, err := parseList(val.(string), param.Type)
		return err
	})

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return nil, err
	}
	return parseList(result, param.Type)
}

// promptFiles asks for data/covariance pairs until the user stops.
func promptFiles(param jobs.Parameter) ([]models.FileEntry, error) {
	files := []models.FileEntry{}
	for i := 1; ; i++ {
		var data string
		dataPrompt := &survey.Input{Message: fmt.Sprintf("%s %d path", param.Description, i)}
		if err := survey.AskOne(dataPrompt, &data, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}

		covMessage := fmt.Sprintf("%s %d covariance file", param.Description, i)
		if param.CovOptional {
			covMessage += " (optional)"
		}
		var cov string
		if err := survey.AskOne(&survey.Input{Message: covMessage}, &cov); err != nil {
			return nil, err
		}
		files = append(files, models.FileEntry{DataFilePath: strings.TrimSpace(data), CovFilePath: strings.TrimSpace(cov)})

		more := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add another file?"}, &more); err != nil {
			return nil, err
		}
		if !more {
			return files, nil
		}
	}
}

// Helper functions
func joinList(v interface{}) string {
	items, ok := v.([]interface{})
	if !ok {
		return ""
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%v", it)
	}
	return strings.Join(parts, ", ")
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	default:
		return false
	}
}

func toInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	default:
		return 0
	}
}
