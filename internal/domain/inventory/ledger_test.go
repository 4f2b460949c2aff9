package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNet(t *testing.T) {
	tests := []struct {
		name string
		in   []Movement
		want []Movement
	}{
		{
			name: "empty",
			in:   nil,
			want: []Movement{},
		},
		{
			name: "folds same product",
			in:   []Movement{{ProductID: 1, Delta: -5}, {ProductID: 1, Delta: -6}},
			want: []Movement{{ProductID: 1, Delta: -11}},
		},
		{
			name: "drops zero net and sorts by product",
			in: []Movement{
				{ProductID: 3, Delta: 10},
				{ProductID: 2, Delta: 4},
				{ProductID: 3, Delta: -10},
				{ProductID: 1, Delta: -1},
			},
			want: []Movement{{ProductID: 1, Delta: -1}, {ProductID: 2, Delta: 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Net(tt.in))
		})
	}
}

type recordingLedger struct {
	applied []Movement
	failOn  uint64
}

func (l *recordingLedger) ApplyDelta(_ context.Context, productID uint64, delta int64) (int64, error) {
	if productID == l.failOn {
		return 0, errors.New("boom")
	}
	l.applied = append(l.applied, Movement{ProductID: productID, Delta: delta})
	return 0, nil
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	ledger := &recordingLedger{failOn: 2}
	err := Apply(context.Background(), ledger, []Movement{
		{ProductID: 1, Delta: -1},
		{ProductID: 2, Delta: -1},
		{ProductID: 3, Delta: -1},
	})
	assert.Error(t, err)
	assert.Equal(t, []Movement{{ProductID: 1, Delta: -1}}, ledger.applied)
}
