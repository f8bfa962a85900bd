package app

import (
	"context"
	"fmt"
	"testing"

	"gofactorial/internal/errors"
	"gofactorial/internal/signmatrix"
	"gofactorial/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchService_PreservesOrder(t *testing.T) {
	cache, err := signmatrix.NewCache(4)
	require.NoError(t, err)
	svc := NewBatchService(NewAnalysisService(nil, cache, nil), 3, nil)

	var reqs []AnalysisRequest
	for i := 0; i < 8; i++ {
		k := 2 + i%3
		rows := testkit.NewGridGenerator(testkit.GridGeneratorConfig{
			Factors:    k,
			Replicates: 2,
			Effects:    map[string]float64{"0": float64(i), "A": 1},
			Noise:      0.5,
			Seed:       int64(i),
		})
		data, err := rows.Generate()
		require.NoError(t, err)
		path := testkit.WriteFile(t, fmt.Sprintf("grid-%d.txt", i), testkit.FormatRows(data))
		reqs = append(reqs, AnalysisRequest{Path: path, Confidence: 0.9})
	}

	results, err := svc.Run(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, result := range results {
		assert.Equal(t, reqs[i].Path, result.Source)
		assert.Equal(t, 2+i%3, result.Summary.K)
	}
	assert.Equal(t, 3, cache.Len())
}

func TestBatchService_FailureReturnsNoResults(t *testing.T) {
	good := testkit.WriteFile(t, "good.txt", textbook)
	bad := testkit.WriteFile(t, "bad.txt", "1 2\n3 4\n5 6\n")

	svc := NewBatchService(NewAnalysisService(nil, nil, nil), 2, nil)
	results, err := svc.Run(context.Background(), []AnalysisRequest{
		{Path: good, Confidence: 0.9},
		{Path: bad, Confidence: 0.9},
		{Path: good, Confidence: 0.9},
	})
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Equal(t, errors.CodeInvalidDesign, errors.GetCode(err))
}

func TestBatchService_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	good := testkit.WriteFile(t, "good.txt", textbook)
	results, err := NewBatchService(NewAnalysisService(nil, nil, nil), 0, nil).Run(ctx,
		[]AnalysisRequest{{Path: good, Confidence: 0.9}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestBatchService_Empty(t *testing.T) {
	results, err := NewBatchService(NewAnalysisService(nil, nil, nil), 4, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
