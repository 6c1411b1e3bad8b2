package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fluxpad/fluxpad/internal/client/client"
)

func (a *App) listDatasets(ctx context.Context) {
	datasets, err := a.api.ListDatasets(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Println("Not signed in.")
			return
		}
		log.Printf("Error: %s", err.Error())
		return
	}

	if len(datasets) == 0 {
		fmt.Println("No datasets yet.")
		return
	}

	for _, d := range datasets {
		fmt.Printf("%s  %s  (%s, %d rows, uploaded %s)\n",
			d.ID, d.Name, d.FileName, d.RowCount, d.CreatedAt.Format("2006-01-02"))
	}
}

func (a *App) queryHistory(ctx context.Context) {
	records, err := a.api.QueryHistory(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Println("Not signed in.")
			return
		}
		log.Printf("Error: %s", err.Error())
		return
	}

	if len(records) == 0 {
		fmt.Println("No queries yet.")
		return
	}

	for _, r := range records {
		fmt.Printf("%s  %s\n    %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Prompt, r.GeneratedSQL)
	}
}
