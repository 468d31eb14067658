package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/noticeboard/internal/client/feed"
	"github.com/dmitrijs2005/noticeboard/internal/client/htmltext"
	"github.com/dmitrijs2005/noticeboard/internal/common"
)

// Notices shows the public board.
//
//	notices              reload with the current filter
//	notices YYYY-MM-DD   filter by day
//	notices all          clear the filter
func (a *App) Notices(ctx context.Context, args []string) error {
	a.navigate(common.PublicEntryPoint)

	var err error
	switch {
	case len(args) == 0:
		st := a.feed.State()
		if !st.Loaded {
			err = a.feed.Mount(ctx)
		} else {
			err = a.feed.Load(ctx, st.Filter.Date)
		}
	case args[0] == "all":
		err = a.feed.SetFilterDate(ctx, "")
	default:
		err = a.feed.SetFilterDate(ctx, args[0])
	}

	if errors.Is(err, feed.ErrInvalidDate) {
		printlnFn("Invalid date, use YYYY-MM-DD")
		return err
	}

	a.printBoard()
	return err
}

func (a *App) printBoard() {
	st := a.feed.State()

	if st.Filter.Date != "" {
		printlnFn("Notices for", st.Filter.Date)
	} else {
		printlnFn("All notices")
	}
	if st.Err != "" {
		printlnFn("Error:", st.Err)
	}
	if len(st.Notices) == 0 {
		printlnFn("No notices found.")
		return
	}

	for _, n := range st.Notices {
		printlnFn("")
		printlnFn("#", htmltext.StripControl(n.Title))
		printlnFn(htmltext.StripControl(n.Byline()))
		if text := htmltext.ToText(n.Content); text != "" {
			printlnFn(text)
		}
	}
}
