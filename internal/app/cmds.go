package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/skim/internal/feed"
	"github.com/wilbur182/skim/internal/slots"
)

// loadCmd executes one slot load off the update loop. The result
// re-enters Update as a SlotSettledMsg regardless of outcome; the
// generation travels with it so late results can be recognized.
func loadCmd(provider slots.Provider, load slots.Load, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		handle, err := provider.Request(ctx, load.SlotID)
		return SlotSettledMsg{Pos: load.Position, Gen: load.Generation, Handle: handle, Err: err}
	}
}

// loadCmds fans a batch of load descriptors into commands.
func loadCmds(provider slots.Provider, loads []slots.Load, timeout time.Duration) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(loads))
	for _, l := range loads {
		cmds = append(cmds, loadCmd(provider, l, timeout))
	}
	return cmds
}

// readBatchCmd pulls the next batch from both streams and merges them.
func readBatchCmd(primary, secondary feed.Provider, interleave bool) tea.Cmd {
	return func() tea.Msg {
		p, err := primary.NextBatch(context.Background())
		if err != nil {
			return BatchLoadedMsg{Err: err}
		}
		var s []feed.Article
		if secondary != nil {
			s, err = secondary.NextBatch(context.Background())
			if err != nil {
				return BatchLoadedMsg{Err: err}
			}
		}
		return BatchLoadedMsg{Articles: feed.Mix(p, s, interleave)}
	}
}

// waitForGrowthCmd blocks on the watcher channel until the feed file
// changes. Re-issued after each FeedGrewMsg.
func waitForGrowthCmd(events <-chan feed.GrowthEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return FeedGrewMsg{}
	}
}

// copyLinkCmd puts an article link on the system clipboard.
func copyLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(link); err != nil {
			return ToastMsg{Message: "Copy failed: " + err.Error(), Duration: 3 * time.Second, IsError: true}
		}
		return ToastMsg{Message: "Link copied", Duration: 2 * time.Second}
	}
}

// tickCmd drives periodic housekeeping (toast expiry).
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
