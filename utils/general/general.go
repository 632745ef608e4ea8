package generalutils

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// HandleSignals returns a context that is cancelled when the process
// receives SIGINT or SIGTERM. Every blocking operation in the login flow
// runs under this context so an interrupt unwinds cleanly.
func HandleSignals() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Printf("\nReceived termination signal: %v\n", sig)
		cancel()
	}()

	return ctx
}

// PrintSessionSummary prints the details of the AWS session that was just
// established for a profile.
func PrintSessionSummary(profile, accountID, accountName, roleName, roleARN, expiration string) {
	fmt.Printf(`
AWS Session Details:
---------------------------------
Profile      : %s
Account Id   : %s
Account Name : %s
Role Name    : %s
Role ARN     : %s
Expiration   : %s
---------------------------------
`, profile, accountID, accountName, roleName, roleARN, expiration)
}
