package utils_test

import (
	"artvista/config"
	"artvista/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendDriftReportSkippedWhenUnconfigured(t *testing.T) {
	config.AppConfig = &config.Config{}

	err := utils.SendDriftReport([]string{"user=x path=y stored=100 recomputed=25"})
	require.NoError(t, err)
}

func TestSendDriftReportSkippedWithoutRecipient(t *testing.T) {
	config.AppConfig = &config.Config{SendgridApiKey: "SG.test"}

	err := utils.SendDriftReport([]string{"user=x path=y stored=100 recomputed=25"})
	require.NoError(t, err)
}
