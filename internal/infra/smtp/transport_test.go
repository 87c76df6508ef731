package smtp

import (
	"errors"
	"fmt"
	"net/textproto"
	"testing"

	"orderalert/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPreservesServerCode(t *testing.T) {
	t.Parallel()

	authErr := fmt.Errorf("smtp auth with smtp.gmail.com: %w",
		&textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"})

	err := classify(authErr, true)
	var config *common.ConfigError
	require.ErrorAs(t, err, &config)
	assert.Equal(t, "535", config.Code)
	assert.Contains(t, config.Detail, "5.7.8")

	rejectErr := fmt.Errorf("rcpt: %w", &textproto.Error{Code: 550, Msg: "mailbox unavailable"})
	err = classify(rejectErr, false)
	var delivery *common.DeliveryError
	require.ErrorAs(t, err, &delivery)
	assert.Equal(t, "550", delivery.Code)
}

func TestClassifyWithoutProtocolCode(t *testing.T) {
	t.Parallel()

	err := classify(errors.New("dial tcp: connection refused"), true)
	var config *common.ConfigError
	require.ErrorAs(t, err, &config)
	assert.Equal(t, common.CodeUnknown, config.Code)

	err = classify(errors.New("write: broken pipe"), false)
	var delivery *common.DeliveryError
	require.ErrorAs(t, err, &delivery)
	assert.Equal(t, common.CodeUnknown, delivery.Code)
}

func TestClassifyVerifyingFlagSelectsCategory(t *testing.T) {
	t.Parallel()

	protoErr := &textproto.Error{Code: 421, Msg: "service not available"}

	var config *common.ConfigError
	assert.ErrorAs(t, classify(protoErr, true), &config)

	var delivery *common.DeliveryError
	assert.ErrorAs(t, classify(protoErr, false), &delivery)
}
