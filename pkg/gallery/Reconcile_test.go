package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fisheye/pkg/models"
)

func renderedFixture() []RenderedNode {
	return []RenderedNode{
		{MediaID: 1, Position: 0},
		{MediaID: 2, Position: 1},
		{MediaID: 3, Position: 2},
	}
}

// applyMoves replays a move plan the way the page script would.
func applyMoves(rendered []RenderedNode, moves []Move) []int {
	current := []int{}

	for _, node := range rendered {
		current = append(current, node.MediaID)
	}

	for _, move := range moves {
		id := current[move.From]
		current = append(current[:move.From], current[move.From+1:]...)
		current = append(current[:move.To], append([]int{id}, current[move.To:]...)...)
	}

	return current
}

func TestReconcile(t *testing.T) {
	t.Run("already in order yields no moves", func(t *testing.T) {
		order := []models.Media{{ID: 1}, {ID: 2}, {ID: 3}}
		assert.Empty(t, Reconcile(renderedFixture(), order))
	})

	t.Run("reversal produces a replayable plan", func(t *testing.T) {
		order := []models.Media{{ID: 3}, {ID: 2}, {ID: 1}}
		moves := Reconcile(renderedFixture(), order)

		assert.Equal(t, []int{3, 2, 1}, applyMoves(renderedFixture(), moves))
	})

	t.Run("joins nodes by id, not by position of duplicate titles", func(t *testing.T) {
		rendered := []RenderedNode{
			{MediaID: 10, Position: 0},
			{MediaID: 20, Position: 1},
			{MediaID: 30, Position: 2},
			{MediaID: 40, Position: 3},
		}

		order := []models.Media{{ID: 30}, {ID: 10}, {ID: 40}, {ID: 20}}
		moves := Reconcile(rendered, order)

		assert.Equal(t, []int{30, 10, 40, 20}, applyMoves(rendered, moves))
	})

	t.Run("media without a rendered node is skipped", func(t *testing.T) {
		order := []models.Media{{ID: 99}, {ID: 3}, {ID: 1}, {ID: 2}}
		moves := Reconcile(renderedFixture(), order)

		assert.Equal(t, []int{3, 1, 2}, applyMoves(renderedFixture(), moves))
	})

	t.Run("rendered node absent from the order keeps its place", func(t *testing.T) {
		order := []models.Media{{ID: 3}, {ID: 1}}
		moves := Reconcile(renderedFixture(), order)

		result := applyMoves(renderedFixture(), moves)
		assert.Equal(t, 3, result[0])
		assert.Equal(t, 1, result[1])
	})

	t.Run("unsorted render positions are normalized first", func(t *testing.T) {
		rendered := []RenderedNode{
			{MediaID: 3, Position: 2},
			{MediaID: 1, Position: 0},
			{MediaID: 2, Position: 1},
		}

		order := []models.Media{{ID: 2}, {ID: 3}, {ID: 1}}
		moves := Reconcile(rendered, order)

		assert.Equal(t, []int{2, 3, 1}, applyMoves(renderedFixture(), moves))
	})

	t.Run("empty inputs yield no moves", func(t *testing.T) {
		assert.Empty(t, Reconcile(nil, nil))
		assert.Empty(t, Reconcile(renderedFixture(), nil))
		assert.Empty(t, Reconcile(nil, []models.Media{{ID: 1}}))
	})
}
