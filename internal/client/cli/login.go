package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/pkolesov/launchbook/internal/client/services"
)

// getSimpleText is an indirection for testing interactive input.
var getSimpleText = GetSimpleText

// Login prompts for an email and runs one pass of the login flow. Local
// validation failures and server-side outcomes are reported to the user;
// only unexpected errors (I/O, persistence) propagate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	flow := services.NewLoginFlow(a.api, a.store, a.logger, func() {
		log.Printf("Logged in")
	})

	res, err := flow.Submit(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrIdentifierRequired) || errors.Is(err, services.ErrIdentifierFormat) {
			log.Printf("%s", err.Error())
			return nil
		}
		return err
	}

	switch res.Outcome {
	case services.OutcomeSuccess:
		// Dismissal was already announced by the completion callback.
	case services.OutcomeNoToken:
		log.Printf("Server issued no session token; still logged out")
	case services.OutcomeRejected:
		log.Printf("Login rejected: %s", strings.Join(res.Messages, "; "))
	case services.OutcomeTransport:
		log.Printf("Login failed: %s", res.Err.Error())
	}
	return nil
}

// Logout clears the stored credential.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gate.Clear(ctx); err != nil {
		return err
	}
	log.Printf("Logged out")
	return nil
}
