// Smoketest drives the deployed site the way a browser would and exits
// non-zero when the basic flow is broken.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/e2etest"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/logging"
)

func checkFrontPage(ctx context.Context, client *e2etest.Client) error {
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get front page")
	}
	if doc.Find("a[href='/classify']").Length() == 0 {
		return errors.New("front page is missing the assessment link")
	}

	doc, err = client.GetDoc(ctx, "/classify")
	if err != nil {
		return errors.Wrap(err, "get classification form")
	}
	if doc.Find("form[action='/classify']").Length() == 0 {
		return errors.New("classification form not found")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "create client", errors.SlogError(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	if err = checkFrontPage(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoketest failed", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "smoketest passed", slog.String("hostname", hostname))
}
