package hashing_test

import (
	"testing"

	"restock/internal/adapters/out/hashing"
	"restock/internal/core/domain/model/restockorder"
	"restock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	_, err := hashing.NewBcryptHasher(bcrypt.MinCost - 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = hashing.NewBcryptHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestBcryptHasher_HashAndMatch(t *testing.T) {
	hasher, err := hashing.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	code, err := restockorder.NewDeliveryCode("482913")
	require.NoError(t, err)
	other, err := restockorder.NewDeliveryCode("482914")
	require.NoError(t, err)

	hash, err := hasher.Hash(code)
	require.NoError(t, err)

	assert.NotContains(t, hash, code.String())
	assert.True(t, hasher.Matches(hash, code))
	assert.False(t, hasher.Matches(hash, other))
	assert.False(t, hasher.Matches("not-a-hash", code))

	again, err := hasher.Hash(code)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")
}

func TestBcryptHasher_RejectsUnconstructedCode(t *testing.T) {
	hasher, err := hashing.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = hasher.Hash(restockorder.DeliveryCode{})

	require.ErrorIs(t, err, restockorder.ErrDeliveryCodeIsNotConstructed)
}
