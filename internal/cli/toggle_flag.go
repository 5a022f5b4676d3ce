package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "toggle"
	toggleImplicitLiteral    = "true"
	toggleAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	errorInvalidToggleFormat = "invalid value %q for --%s; accepted values: %s"
	flagArgumentTerminator   = "--"
	longFlagPrefix           = "--"
	flagAssignmentFormat     = "--%s=%s"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"1":     true,
	"false": false,
	"f":     false,
	"no":    false,
	"n":     false,
	"off":   false,
	"0":     false,
}

// parseToggleLiteral interprets a yes/no style literal. An empty literal means true.
func parseToggleLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	value, known := toggleLiterals[normalized]
	return value, known
}

// toggleFlag is a boolean flag that also accepts yes/no and on/off, with or without "=".
type toggleFlag struct {
	target *bool
	name   string
}

func (flag *toggleFlag) Set(input string) error {
	value, known := parseToggleLiteral(input)
	if !known {
		return fmt.Errorf(errorInvalidToggleFormat, input, flag.name, toggleAcceptedLiterals)
	}
	*flag.target = value
	return nil
}

func (flag *toggleFlag) String() string {
	if flag == nil || flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagTypeName
}

func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	flagSet.Var(&toggleFlag{target: target, name: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(*target)
		registered.NoOptDefVal = toggleImplicitLiteral
	}
}

// joinToggleArguments rewrites "--name value" into "--name=value" for toggle flags followed by a
// recognized literal, since pflag only binds optional values written with "=".
func joinToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}

	joined := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		argument := arguments[argumentIndex]
		if argument == flagArgumentTerminator {
			joined = append(joined, arguments[argumentIndex:]...)
			break
		}
		flagName := strings.TrimPrefix(argument, longFlagPrefix)
		_, isToggle := toggleNames[flagName]
		if isToggle && strings.HasPrefix(argument, longFlagPrefix) && argumentIndex+1 < len(arguments) {
			nextArgument := arguments[argumentIndex+1]
			if _, known := parseToggleLiteral(nextArgument); known && nextArgument != "" && !strings.HasPrefix(nextArgument, "-") {
				joined = append(joined, fmt.Sprintf(flagAssignmentFormat, flagName, nextArgument))
				argumentIndex++
				continue
			}
		}
		joined = append(joined, argument)
	}
	return joined
}

func collectToggleNames(command *cobra.Command, toggleNames map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == toggleFlagTypeName {
			toggleNames[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectToggleNames(child, toggleNames)
	}
}
