package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/baseapp/internal/cli"
)

const (
	emailFlag      = "email"
	firstNameFlag  = "first-name"
	lastNameFlag   = "last-name"
	inviteCodeFlag = "invite-code"
	accountIDFlag  = "account-id"
	roleFlag       = "role"
)

var resetPasswordFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email of the user whose password is reset (required)",
	},
}

var createUserFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email address of the new user",
	},
	firstNameFlag: &cobraflags.StringFlag{
		Name:  firstNameFlag,
		Value: "",
		Usage: "First name",
	},
	lastNameFlag: &cobraflags.StringFlag{
		Name:  lastNameFlag,
		Value: "",
		Usage: "Last name",
	},
	inviteCodeFlag: &cobraflags.StringFlag{
		Name:  inviteCodeFlag,
		Value: "",
		Usage: "Invite code; must be listed in INVITE_CODES",
	},
	accountIDFlag: &cobraflags.StringFlag{
		Name:  accountIDFlag,
		Value: "",
		Usage: "Existing account to join. Empty creates a new account owned by the user",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: "",
		Usage: "Role: admin, client or collaborator (default admin)",
	},
}

func newResetPasswordCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace a user's password with a temporary one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := loadRuntime()
			if err != nil {
				return err
			}
			email := resetPasswordFlags[emailFlag].GetString()
			return cli.RunResetPasswordCommand(cmd.Context(), cfg.DBPath, email, appLogger, cmd.OutOrStdout())
		},
	}
	cobraflags.RegisterMap(command, resetPasswordFlags)
	return command
}

func newCreateUserCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "create-user",
		Short: "Provision a user; the password is read from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := loadRuntime()
			if err != nil {
				return err
			}
			options := cli.CreateUserOptions{
				Email:      createUserFlags[emailFlag].GetString(),
				FirstName:  createUserFlags[firstNameFlag].GetString(),
				LastName:   createUserFlags[lastNameFlag].GetString(),
				InviteCode: createUserFlags[inviteCodeFlag].GetString(),
				AccountID:  createUserFlags[accountIDFlag].GetString(),
				Role:       createUserFlags[roleFlag].GetString(),
			}
			return cli.RunCreateUserCommand(cmd.Context(), cfg.DBPath, cfg.InviteCodes, options, appLogger, cmd.OutOrStdout())
		},
	}
	cobraflags.RegisterMap(command, createUserFlags)
	return command
}
