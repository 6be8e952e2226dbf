package main

import (
	"encoding/json"
	"fmt"
	"io"

	sdk "github.com/myanmarcares/myanmarcares/sdk/go"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPage writes the items followed by the pagination summary.
func printPage[T any](out, errOut io.Writer, env sdk.Envelope[[]T]) error {
	if err := printJSON(out, env.Data); err != nil {
		return err
	}
	if env.Meta.Pagination != nil {
		info := env.Pagination()
		fmt.Fprintf(errOut, "%s (page %d of %d)\n", info.Summary(len(env.Data)), info.Page, info.PageCount)
	}
	return nil
}

// printOne writes the entity, or reports that it does not exist.
func printOne[T any](out io.Writer, env sdk.Envelope[*T], what, id string) error {
	if !env.Found() {
		return fmt.Errorf("%s %q not found", what, id)
	}
	return printJSON(out, env.Data)
}
