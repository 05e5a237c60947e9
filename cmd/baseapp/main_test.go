package main

import "testing"

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("")
	if err != nil {
		t.Fatalf("expected default port, got error: %v", err)
	}
	if port != "8080" {
		t.Fatalf("expected default port 8080, got %q", port)
	}

	port, err = resolvePort("9090")
	if err != nil {
		t.Fatalf("expected valid port, got error: %v", err)
	}
	if port != "9090" {
		t.Fatalf("expected port 9090, got %q", port)
	}

	for _, raw := range []string{"0", "70000", "not-a-number"} {
		if _, err := resolvePort(raw); err == nil {
			t.Fatalf("expected port %q to fail", raw)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "reset-password", "create-user"} {
		command, _, err := root.Find([]string{name})
		if err != nil || command == nil || command.Name() != name {
			t.Fatalf("expected subcommand %q, got %v (%v)", name, command, err)
		}
	}

	createUser, _, _ := root.Find([]string{"create-user"})
	for _, flag := range []string{emailFlag, firstNameFlag, lastNameFlag, inviteCodeFlag, accountIDFlag, roleFlag} {
		if createUser.Flags().Lookup(flag) == nil {
			t.Fatalf("expected create-user flag --%s", flag)
		}
	}
}
