package gallery

import (
	"log/slog"
	"sort"

	"fisheye/pkg/models"
)

// RenderedNode is the snapshot of one already-rendered gallery
// thumbnail: which media it displays and where it currently sits.
type RenderedNode struct {
	MediaID  int `json:"mediaId"`
	Position int `json:"position"`
}

// Move repositions one rendered node. Moves apply in order: take the
// node currently at From and insert it before the node at To.
type Move struct {
	MediaID int `json:"mediaId"`
	From    int `json:"from"`
	To      int `json:"to"`
}

/*
Reconcile computes the moves that bring already-rendered gallery nodes
into the newly sorted order without re-creating them. Nodes are joined
to media by id, never by title, so duplicate or missing titles cannot
cause silent drift.

Rendered nodes whose media is absent from the new order, and media with
no rendered node, are logged and skipped; skipped nodes keep their
prior position.
*/
func Reconcile(rendered []RenderedNode, order []models.Media) []Move {
	snapshot := make([]RenderedNode, len(rendered))
	copy(snapshot, rendered)

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Position < snapshot[j].Position
	})

	// current is the simulated visual order, mutated as moves apply.
	current := []int{}
	renderedIDs := map[int]bool{}

	for _, node := range snapshot {
		current = append(current, node.MediaID)
		renderedIDs[node.MediaID] = true
	}

	orderIDs := map[int]bool{}

	for _, m := range order {
		orderIDs[m.ID] = true
	}

	for _, node := range snapshot {
		if !orderIDs[node.MediaID] {
			slog.Warn("rendered node has no entry in the sorted order, leaving it in place", "mediaID", node.MediaID)
		}
	}

	moves := []Move{}
	target := 0

	for _, m := range order {
		if !renderedIDs[m.ID] {
			slog.Warn("sorted media has no rendered node, skipping", "mediaID", m.ID)
			continue
		}

		from := indexOf(current, m.ID)

		if from != target {
			moves = append(moves, Move{MediaID: m.ID, From: from, To: target})

			current = append(current[:from], current[from+1:]...)
			current = append(current[:target], append([]int{m.ID}, current[target:]...)...)
		}

		target++
	}

	return moves
}

func indexOf(ids []int, id int) int {
	for index, candidate := range ids {
		if candidate == id {
			return index
		}
	}

	return -1
}
