// Command searchserver loads documents into an in-memory TF-IDF index and
// answers searches against it.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/search-server/cmd/searchserver/cmd"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(apperrors.ExitCode(err))
	}
}
