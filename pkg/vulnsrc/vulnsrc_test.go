package vulnsrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secincident/incident-db/pkg/vulnsrc"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"nvd", "incident"}, vulnsrc.Names())
}
