package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/app"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/config"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/identity"
)

// idTokenEnv carries the identity provider's ID token when the client runs
// behind a host that has already logged the user in.
const idTokenEnv = "FORTUNE_ID_TOKEN"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg, identity.NewStaticProvider(os.Getenv(idTokenEnv)))
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	st, err := a.Start(ctx)
	if errors.Is(err, identity.ErrLoginRedirect) {
		log.Printf("no identity session: set %s", idTokenEnv)
	} else if err != nil {
		log.Printf("%v", err)
		return
	}

	today, _, err := a.Fortune.Today(ctx)
	if err != nil {
		log.Printf("today: %v", err)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]any{
		"session": map[string]any{"status": st.Status, "subject": st.SubjectID(), "tier": st.Tier()},
		"today":   today,
	})
}
