package command

import (
	commandHandler "milkline/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSeedAdminHandler)

type Command struct {
	seedAdminHandler *commandHandler.SeedAdminHandler
}

// NewCommand .
func NewCommand(
	seedAdminHandler *commandHandler.SeedAdminHandler,
) *Command {
	return &Command{
		seedAdminHandler: seedAdminHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	seedAdmin := &cobra.Command{
		Use:   "seed-admin",
		Short: "建立預設管理員帳號（已存在則跳過）",
		Run: func(cmd *cobra.Command, args []string) {
			command, cleanup, err := newCmd()
			if err != nil {
				panic(err)
			}
			defer cleanup()

			command.seedAdminHandler.Run(cmd, args)
		},
	}
	seedAdmin.Flags().String("username", "admin", "管理員帳號")
	seedAdmin.Flags().String("password", "", "管理員密碼（必填）")
	seedAdmin.Flags().String("email", "", "管理員信箱")
	seedAdmin.Flags().String("name", "Administrator", "顯示名稱")

	rootCmd.AddCommand(seedAdmin)
}
