// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

// jsonReport is the ATA subset of "smartctl --json -x" output.
type jsonReport struct {
	JSONFormatVersion  []int                `json:"json_format_version"`
	Smartctl           jsonSmartctl         `json:"smartctl"`
	Device             jsonDevice           `json:"device"`
	ModelFamily        string               `json:"model_family,omitempty"`
	ModelName          string               `json:"model_name,omitempty"`
	SerialNumber       string               `json:"serial_number,omitempty"`
	WWN                *jsonWWN             `json:"wwn,omitempty"`
	FirmwareVersion    string               `json:"firmware_version,omitempty"`
	UserCapacity       *jsonUserCapacity    `json:"user_capacity,omitempty"`
	LogicalBlockSize   int64                `json:"logical_block_size,omitempty"`
	PhysicalBlockSize  int64                `json:"physical_block_size,omitempty"`
	RotationRate       *int64               `json:"rotation_rate,omitempty"`
	FormFactor         *jsonNamedValue      `json:"form_factor,omitempty"`
	InSmartctlDatabase *bool                `json:"in_smartctl_database,omitempty"`
	ATAVersion         *jsonVersionString   `json:"ata_version,omitempty"`
	SATAVersion        *jsonVersionString   `json:"sata_version,omitempty"`
	LocalTime          *jsonLocalTime       `json:"local_time,omitempty"`
	SmartSupport       *jsonSmartSupport    `json:"smart_support,omitempty"`
	SmartStatus        *jsonSmartStatus     `json:"smart_status,omitempty"`
	ATASmartData       *jsonATASmartData    `json:"ata_smart_data,omitempty"`
	ATASCTCapabilities *jsonSCTCapabilities `json:"ata_sct_capabilities,omitempty"`
	ATASmartAttributes *jsonATAAttributes   `json:"ata_smart_attributes,omitempty"`
	ATALogDirectory    *jsonLogDirectory    `json:"ata_log_directory,omitempty"`
	ATASmartErrorLog   *jsonErrorLog        `json:"ata_smart_error_log,omitempty"`
	ATASelfTestLog     *jsonSelfTestLog     `json:"ata_smart_self_test_log,omitempty"`
	ATASelectiveLog    *jsonSelectiveLog    `json:"ata_smart_selective_self_test_log,omitempty"`
	ATASCTStatus       *jsonSCTStatus       `json:"ata_sct_status,omitempty"`
	ATASCTERC          *jsonSCTERC          `json:"ata_sct_erc,omitempty"`
	ATADeviceStats     *jsonDeviceStats     `json:"ata_device_statistics,omitempty"`
	SATAPhyEvents      *jsonPhyEvents       `json:"sata_phy_event_counters,omitempty"`
}

type jsonSmartctl struct {
	Version      []int            `json:"version"`
	SVNRevision  string           `json:"svn_revision,omitempty"`
	PlatformInfo string           `json:"platform_info,omitempty"`
	BuildInfo    string           `json:"build_info,omitempty"`
	ExitStatus   int              `json:"exit_status"`
	Messages     []jsonLogMessage `json:"messages,omitempty"`
}

type jsonLogMessage struct {
	String   string `json:"string"`
	Severity string `json:"severity"`
}

type jsonDevice struct {
	Name     string `json:"name"`
	InfoName string `json:"info_name"`
	Type     string `json:"type"`
	Protocol string `json:"protocol"`
}

type jsonWWN struct {
	NAA int64 `json:"naa"`
	OUI int64 `json:"oui"`
	ID  int64 `json:"id"`
}

type jsonUserCapacity struct {
	Blocks int64 `json:"blocks"`
	Bytes  int64 `json:"bytes"`
}

type jsonNamedValue struct {
	Value  int64  `json:"value"`
	String string `json:"string"`
	Name   string `json:"name,omitempty"`
}

type jsonVersionString struct {
	String     string `json:"string"`
	MajorValue int64  `json:"major_value,omitempty"`
	MinorValue int64  `json:"minor_value,omitempty"`
	Value      int64  `json:"value,omitempty"`
}

type jsonLocalTime struct {
	TimeT   int64  `json:"time_t"`
	Asctime string `json:"asctime"`
}

type jsonSmartSupport struct {
	Available bool `json:"available"`
	Enabled   bool `json:"enabled"`
}

type jsonSmartStatus struct {
	Passed bool `json:"passed"`
}

type jsonATASmartData struct {
	OfflineDataCollection struct {
		Status            jsonStatus `json:"status"`
		CompletionSeconds *int64     `json:"completion_seconds,omitempty"`
	} `json:"offline_data_collection"`
	SelfTest struct {
		Status         jsonStatus `json:"status"`
		PollingMinutes struct {
			Short      *int64 `json:"short,omitempty"`
			Extended   *int64 `json:"extended,omitempty"`
			Conveyance *int64 `json:"conveyance,omitempty"`
		} `json:"polling_minutes"`
	} `json:"self_test"`
	Capabilities jsonSmartCapabilities `json:"capabilities"`
}

type jsonStatus struct {
	Value            int64  `json:"value"`
	String           string `json:"string"`
	Passed           *bool  `json:"passed,omitempty"`
	RemainingPercent *int   `json:"remaining_percent,omitempty"`
}

type jsonSmartCapabilities struct {
	Values                        []int64 `json:"values"`
	ExecOfflineImmediateSupported bool    `json:"exec_offline_immediate_supported"`
	OfflineIsAbortedUponNewCmd    bool    `json:"offline_is_aborted_upon_new_cmd"`
	OfflineSurfaceScanSupported   bool    `json:"offline_surface_scan_supported"`
	SelfTestsSupported            bool    `json:"self_tests_supported"`
	ConveyanceSelfTestSupported   bool    `json:"conveyance_self_test_supported"`
	SelectiveSelfTestSupported    bool    `json:"selective_self_test_supported"`
	AttributeAutosaveEnabled      bool    `json:"attribute_autosave_enabled"`
	ErrorLoggingSupported         bool    `json:"error_logging_supported"`
	GPLoggingSupported            bool    `json:"gp_logging_supported"`
}

type jsonSCTCapabilities struct {
	Value                         int64 `json:"value"`
	ErrorRecoveryControlSupported bool  `json:"error_recovery_control_supported"`
	FeatureControlSupported       bool  `json:"feature_control_supported"`
	DataTableSupported            bool  `json:"data_table_supported"`
}

type jsonATAAttributes struct {
	Revision int64              `json:"revision"`
	Table    []jsonATAAttribute `json:"table"`
}

type jsonATAAttribute struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Value      *int   `json:"value"`
	Worst      *int   `json:"worst"`
	Thresh     *int   `json:"thresh"`
	WhenFailed string `json:"when_failed"`
	Flags      struct {
		Value         int64  `json:"value"`
		String        string `json:"string"`
		Prefailure    bool   `json:"prefailure"`
		UpdatedOnline bool   `json:"updated_online"`
	} `json:"flags"`
	Raw struct {
		Value  int64  `json:"value"`
		String string `json:"string"`
	} `json:"raw"`
}

type jsonLogDirectory struct {
	GPDirVersion    int               `json:"gp_dir_version"`
	SmartDirVersion int               `json:"smart_dir_version"`
	Table           []jsonLogDirEntry `json:"table"`
}

type jsonLogDirEntry struct {
	Address      int    `json:"address"`
	Name         string `json:"name"`
	Read         bool   `json:"read"`
	Write        bool   `json:"write"`
	GPSectors    *int   `json:"gp_sectors,omitempty"`
	SmartSectors *int   `json:"smart_sectors,omitempty"`
}

type jsonErrorLog struct {
	Summary  *jsonErrorLogTable `json:"summary,omitempty"`
	Extended *jsonErrorLogTable `json:"extended,omitempty"`
}

type jsonErrorLogTable struct {
	Revision    int64               `json:"revision"`
	Count       int64               `json:"count"`
	LoggedCount int64               `json:"logged_count,omitempty"`
	Table       []jsonErrorLogEntry `json:"table,omitempty"`
}

type jsonErrorLogEntry struct {
	ErrorNumber      int    `json:"error_number"`
	LogIndex         int    `json:"log_index,omitempty"`
	LifetimeHours    int64  `json:"lifetime_hours"`
	ErrorDescription string `json:"error_description"`
}

type jsonSelfTestLog struct {
	Standard *jsonSelfTestTable `json:"standard,omitempty"`
	Extended *jsonSelfTestTable `json:"extended,omitempty"`
}

type jsonSelfTestTable struct {
	Revision int64               `json:"revision"`
	Count    int                 `json:"count"`
	Table    []jsonSelfTestEntry `json:"table,omitempty"`
}

type jsonSelfTestEntry struct {
	Type          jsonStatus `json:"type"`
	Status        jsonStatus `json:"status"`
	LifetimeHours int64      `json:"lifetime_hours"`
	LBA           *int64     `json:"lba,omitempty"`
}

type jsonSelectiveLog struct {
	Revision int64 `json:"revision"`
	Table    []struct {
		LBAMin uint64     `json:"lba_min"`
		LBAMax uint64     `json:"lba_max"`
		Status jsonStatus `json:"status"`
	} `json:"table"`
}

type jsonSCTStatus struct {
	FormatVersion int64      `json:"format_version"`
	SCTVersion    int64      `json:"sct_version"`
	DeviceState   jsonStatus `json:"device_state"`
	Temperature   struct {
		Current         *int64 `json:"current,omitempty"`
		PowerCycleMin   *int64 `json:"power_cycle_min,omitempty"`
		PowerCycleMax   *int64 `json:"power_cycle_max,omitempty"`
		LifetimeMin     *int64 `json:"lifetime_min,omitempty"`
		LifetimeMax     *int64 `json:"lifetime_max,omitempty"`
		UnderLimitCount *int64 `json:"under_limit_count,omitempty"`
		OverLimitCount  *int64 `json:"over_limit_count,omitempty"`
	} `json:"temperature"`
}

type jsonSCTERC struct {
	Read  jsonERCTimer `json:"read"`
	Write jsonERCTimer `json:"write"`
}

type jsonERCTimer struct {
	Enabled     bool  `json:"enabled"`
	Deciseconds int64 `json:"deciseconds"`
}

type jsonDeviceStats struct {
	Pages []struct {
		Number   int    `json:"number"`
		Name     string `json:"name"`
		Revision int    `json:"revision"`
		Table    []struct {
			Offset int    `json:"offset"`
			Name   string `json:"name"`
			Size   int    `json:"size"`
			Value  *int64 `json:"value,omitempty"`
			Flags  struct {
				Value  int64  `json:"value"`
				String string `json:"string"`
				Valid  bool   `json:"valid"`
			} `json:"flags"`
		} `json:"table"`
	} `json:"pages"`
}

type jsonPhyEvents struct {
	Table []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Size     int    `json:"size"`
		Value    int64  `json:"value"`
		Overflow bool   `json:"overflow"`
	} `json:"table"`
	Reset bool `json:"reset"`
}
