package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Kikobeats/lightship/cmd/util"
)

func bindServeFlagsFunc(flags *pflag.FlagSet) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		util.MustBindPFlag("port", flags.Lookup("port"))
		util.MustBindEnv("port", "LIGHTSHIP_PORT")

		util.MustBindPFlag("timeout", flags.Lookup("timeout"))
		util.MustBindEnv("timeout", "LIGHTSHIP_TIMEOUT")

		util.MustBindPFlag("grace_period", flags.Lookup("grace-period"))
		util.MustBindEnv("grace_period", "LIGHTSHIP_GRACE_PERIOD")

		util.MustBindPFlag("log.format", flags.Lookup("log-format"))
		util.MustBindEnv("log.format", "LIGHTSHIP_LOG_FORMAT")

		util.MustBindPFlag("log.level", flags.Lookup("log-level"))
		util.MustBindEnv("log.level", "LIGHTSHIP_LOG_LEVEL")
	}
}
