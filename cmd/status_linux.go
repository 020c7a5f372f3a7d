//go:build linux

package cmd

import (
	"fmt"

	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

func readFrontendStatus(path string) (frontendStatus, error) {
	fe, err := dvb.OpenFrontend(path)
	if err != nil {
		return frontendStatus{}, fmt.Errorf("failed to open frontend device: %w", err)
	}
	defer fe.Close()

	var st frontendStatus
	if st.Status, err = fe.ReadStatus(); err != nil {
		return frontendStatus{}, fmt.Errorf("FE_READ_STATUS failed: %w", err)
	}

	props, err := fe.GetProperties(dvb.DTVFrequency)
	if err != nil {
		return frontendStatus{}, fmt.Errorf("FE_GET_PROPERTY failed: %w", err)
	}
	st.Frequency = props[0].Data

	if st.Parameters, err = fe.GetFrontend(); err != nil {
		return frontendStatus{}, fmt.Errorf("FE_GET_FRONTEND failed: %w", err)
	}
	return st, nil
}
