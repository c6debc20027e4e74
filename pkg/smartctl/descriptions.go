// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import "strings"

// AttributeDescription is reference data for one SMART attribute ID. Entries
// with DiskTypeAny apply to every device; HDD/SSD entries override them.
type AttributeDescription struct {
	ID          int      `json:"id"`
	DiskType    DiskType `json:"-"`
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Critical    bool     `json:"critical"`
	Description string   `json:"-"`
}

// https://en.wikipedia.org/wiki/Self-Monitoring,_Analysis_and_Reporting_Technology
// https://www.hdsentinel.com/smart/smartattr.php
// Attributes not listed here are vendor specific and keep the name printed by smartctl.
var attributeDescriptions = []AttributeDescription{
	{ID: 1, Key: "Raw_Read_Error_Rate", Name: "Raw Read Error Rate", Critical: true, Description: "Errors occurred while reading raw data from a disk"},
	{ID: 2, Key: "Throughput_Performance", Name: "Throughput Performance", Description: "General throughput performance of the hard disk"},
	{ID: 3, Key: "Spin_Up_Time", Name: "Spin Up Time", Critical: true, Description: "Time needed by spindle to spin-up to full RPM"},
	{ID: 4, Key: "Start_Stop_Count", Name: "Start/Stop Count", Description: "Count of start/stop cycles of spindle"},
	{ID: 5, Key: "Reallocated_Sector_Ct", Name: "Reallocated Sector Count", Critical: true, Description: "Count of sectors moved to the spare area"},
	{ID: 5, DiskType: DiskTypeSSD, Key: "Reallocated_Sector_Ct", Name: "Reallocated Block Count", Critical: true, Description: "Count of flash blocks retired and replaced by spare blocks"},
	{ID: 6, Key: "Read_Channel_Margin", Name: "Read Channel Margin", Description: "Margin of a channel while reading data"},
	{ID: 7, Key: "Seek_Error_Rate", Name: "Seek Error Rate", Critical: true, Description: "Rate of positioning errors of the read/write heads"},
	{ID: 8, Key: "Seek_Time_Performance", Name: "Seek Time Performance", Critical: true, Description: "Average time of seek operations of the heads"},
	{ID: 9, Key: "Power_On_Hours", Name: "Power-On Hours", Description: "Total time the drive is powered on"},
	{ID: 10, Key: "Spin_Retry_Count", Name: "Spin Retry Count", Critical: true, Description: "Retry count of spin start attempts"},
	{ID: 11, Key: "Calibration_Retry_Count", Name: "Calibration Retry Count", Critical: true, Description: "Number of attempts to calibrate a drive"},
	{ID: 12, Key: "Power_Cycle_Count", Name: "Power Cycle Count", Description: "Number of complete power on/off cycles"},
	{ID: 13, Key: "Soft_Read_Error_Rate", Name: "Soft Read Error Rate", Description: "Number of software read errors"},
	{ID: 22, Key: "Helium_Level", Name: "Helium Level", Critical: true, Description: "Current helium level of a sealed drive"},
	{ID: 170, DiskType: DiskTypeSSD, Key: "Available_Reservd_Space", Name: "Available Reserved Space", Critical: true, Description: "Amount of reserved flash space available"},
	{ID: 171, DiskType: DiskTypeSSD, Key: "Program_Fail_Count", Name: "Program Fail Count", Critical: true, Description: "Number of flash program operation failures"},
	{ID: 172, DiskType: DiskTypeSSD, Key: "Erase_Fail_Count", Name: "Erase Fail Count", Critical: true, Description: "Number of flash erase operation failures"},
	{ID: 173, DiskType: DiskTypeSSD, Key: "Wear_Leveling_Count", Name: "Wear Leveling Count", Description: "Average erase count of flash blocks"},
	{ID: 174, DiskType: DiskTypeSSD, Key: "Unexpect_Power_Loss_Ct", Name: "Unexpected Power Loss Count", Description: "Number of unexpected power loss events"},
	{ID: 175, DiskType: DiskTypeSSD, Key: "Program_Fail_Count_Chip", Name: "Program Fail Count (Chip)", Critical: true, Description: "Number of flash program failures per chip"},
	{ID: 177, DiskType: DiskTypeSSD, Key: "Wear_Leveling_Count", Name: "Wear Range Delta", Description: "Delta between most and least worn flash blocks"},
	{ID: 179, DiskType: DiskTypeSSD, Key: "Used_Rsvd_Blk_Cnt_Tot", Name: "Used Reserved Block Count Total", Critical: true, Description: "Number of reserved blocks used"},
	{ID: 180, DiskType: DiskTypeSSD, Key: "Unused_Rsvd_Blk_Cnt_Tot", Name: "Unused Reserved Block Count Total", Critical: true, Description: "Number of unused reserved blocks"},
	{ID: 181, DiskType: DiskTypeSSD, Key: "Program_Fail_Cnt_Total", Name: "Program Fail Count Total", Critical: true, Description: "Total number of flash program operation failures"},
	{ID: 182, DiskType: DiskTypeSSD, Key: "Erase_Fail_Count_Total", Name: "Erase Fail Count Total", Critical: true, Description: "Total number of flash erase operation failures"},
	{ID: 183, Key: "Runtime_Bad_Block", Name: "Runtime Bad Block", Critical: true, Description: "Number of runtime bad blocks"},
	{ID: 184, Key: "End-to-End_Error", Name: "End-to-End Error", Critical: true, Description: "Parity errors in the data path through the drive cache"},
	{ID: 187, Key: "Reported_Uncorrect", Name: "Reported Uncorrectable Errors", Critical: true, Description: "Number of errors that could not be recovered using hardware ECC"},
	{ID: 188, Key: "Command_Timeout", Name: "Command Timeout", Critical: true, Description: "Number of aborted operations due to timeout"},
	{ID: 189, Key: "High_Fly_Writes", Name: "High Fly Writes", Description: "Number of writes with the head flying outside its normal range"},
	{ID: 190, Key: "Airflow_Temperature_Cel", Name: "Airflow Temperature Celsius", Description: "Airflow temperature"},
	{ID: 191, Key: "G-Sense_Error_Rate", Name: "G-Sense Error Rate", Description: "Count of errors resulting from shock or vibration"},
	{ID: 192, Key: "Power-Off_Retract_Count", Name: "Power-Off Retract Count", Description: "Count of power off cycles"},
	{ID: 193, Key: "Load_Cycle_Count", Name: "Load/Unload Cycle Count", Description: "Number of load/unload cycles"},
	{ID: 194, Key: "Temperature_Celsius", Name: "Temperature Celsius", Description: "Disk temperature in Celsius"},
	{ID: 195, Key: "Hardware_ECC_Recovered", Name: "Hardware ECC Recovered", Description: "Count of corrected errors"},
	{ID: 196, Key: "Reallocated_Event_Count", Name: "Reallocation Event Count", Critical: true, Description: "Count of sector remap operations"},
	{ID: 197, Key: "Current_Pending_Sector", Name: "Current Pending Sector Count", Critical: true, Description: "Count of unstable sectors"},
	{ID: 198, Key: "Offline_Uncorrectable", Name: "Offline Uncorrectable Sector Count", Critical: true, Description: "Count of uncorrectable errors when reading/writing"},
	{ID: 199, Key: "UDMA_CRC_Error_Count", Name: "UDMA CRC Error Count", Description: "Count of errors during data transfer between disk and host"},
	{ID: 200, Key: "Multi_Zone_Error_Rate", Name: "Write Error Rate", Description: "Errors occurred while writing raw data to a disk"},
	{ID: 201, Key: "Soft_Read_Error_Rate", Name: "Soft Read Error Rate", Description: "Number of off-track read errors"},
	{ID: 202, Key: "Data_Address_Mark_Errs", Name: "Data Address Mark Errors", Description: "Number of data address mark errors"},
	{ID: 202, DiskType: DiskTypeSSD, Key: "Percent_Lifetime_Remain", Name: "Percent Lifetime Remaining", Critical: true, Description: "Remaining rated lifetime of the flash in percent"},
	{ID: 203, Key: "Run_Out_Cancel", Name: "Run Out Cancel", Description: "Number of data correction errors"},
	{ID: 204, Key: "Soft_ECC_Correction", Name: "Soft ECC Correction", Description: "Number of errors corrected by software ECC"},
	{ID: 205, Key: "Thermal_Asperity_Rate", Name: "Thermal Asperity Rate", Description: "Number of thermal problems"},
	{ID: 206, Key: "Flying_Height", Name: "Flying Height", Description: "Head flying height"},
	{ID: 207, Key: "Spin_High_Current", Name: "Spin High Current", Description: "Current value during spin up"},
	{ID: 208, Key: "Spin_Buzz", Name: "Spin Buzz", Description: "Number of cycles needed to spin up"},
	{ID: 209, Key: "Offline_Seek_Performnce", Name: "Offline Seek Performance", Description: "Drive performance during offline operations"},
	{ID: 220, Key: "Disk_Shift", Name: "Disk Shift", Description: "Distance the disk has shifted relative to the spindle"},
	{ID: 221, Key: "G-Sense_Error_Rate", Name: "G-Sense Error Rate", Description: "Count of errors resulting from shock or vibration"},
	{ID: 222, Key: "Loaded_Hours", Name: "Loaded Hours", Description: "Time spent with the heads loaded"},
	{ID: 223, Key: "Load_Retry_Count", Name: "Load/Unload Retry Count", Description: "Number of times the head changed position"},
	{ID: 224, Key: "Load_Friction", Name: "Load Friction", Description: "Mechanical friction rate"},
	{ID: 226, Key: "Load-in_Time", Name: "Load-in Time", Description: "Total time the heads are loaded"},
	{ID: 227, Key: "Torq-amp_Count", Name: "Torque Amplification Count", Description: "Rate of torque increase"},
	{ID: 228, Key: "Power-off_Retract_Count", Name: "Power-off Retract Count", Description: "Number of power off cycles"},
	{ID: 230, Key: "Head_Amplitude", Name: "GMR Head Amplitude", Description: "Head positioning amplitude"},
	{ID: 230, DiskType: DiskTypeSSD, Key: "Media_Wearout_Indicator", Name: "Drive Life Protection Status", Description: "Current state of drive operation based upon the life curve"},
	{ID: 231, Key: "Temperature_Celsius", Name: "Temperature Celsius", Description: "Disk temperature"},
	{ID: 231, DiskType: DiskTypeSSD, Key: "SSD_Life_Left", Name: "SSD Life Left", Critical: true, Description: "Approximate remaining life of the flash"},
	{ID: 232, DiskType: DiskTypeSSD, Key: "Available_Reservd_Space", Name: "Available Reserved Space", Critical: true, Description: "Number of reserved blocks remaining"},
	{ID: 233, DiskType: DiskTypeSSD, Key: "Media_Wearout_Indicator", Name: "Media Wearout Indicator", Critical: true, Description: "Normalized wear of the NAND flash"},
	{ID: 240, Key: "Head_Flying_Hours", Name: "Head Flying Hours", Description: "Time spent with the heads positioned over the platter"},
	{ID: 241, Key: "Total_LBAs_Written", Name: "Total LBAs Written", Description: "Total number of LBAs written"},
	{ID: 242, Key: "Total_LBAs_Read", Name: "Total LBAs Read", Description: "Total number of LBAs read"},
	{ID: 250, Key: "Read_Error_Retry_Rate", Name: "Read Error Retry Rate", Description: "Number of retries during read operations"},
	{ID: 254, Key: "Free_Fall_Sensor", Name: "Free Fall Protection", Description: "Number of free fall events detected"},
}

// genericDescriptions describes non-attribute properties by generic key.
var genericDescriptions = map[string]string{
	"smartctl/version/_merged":           "Version of smartctl that produced the report",
	"smartctl/version/_merged_full":      "Version banner of smartctl including build information",
	"model_family":                       "Model family from the smartctl drive database",
	"model_name":                         "Device model",
	"serial_number":                      "Serial number of the device",
	"wwn/_merged":                        "World wide name of the device",
	"firmware_version":                   "Firmware version of the device",
	"user_capacity/bytes":                "Capacity visible to the host",
	"logical_block_size":                 "Logical sector size",
	"rotation_rate":                      "Spindle speed; solid state devices report zero",
	"form_factor/name":                   "Physical form factor",
	"in_smartctl_database":               "Whether the drive is in the smartctl drive database",
	"ata_version/string":                 "ATA standard supported by the device",
	"sata_version/string":                "SATA standard and link speed",
	"local_time/asctime":                 "Time on the host when the report was captured",
	"smart_support/available":            "Whether the device supports SMART",
	"smart_support/enabled":              "Whether SMART is enabled on the device",
	"smart_status/passed":                "Overall health self-assessment. Failure means the device is predicted to fail soon",
	"ata_smart_attributes/revision":      "Revision of the SMART attribute data structure",
	"ata_smart_error_log/extended/count": "Number of ATA errors recorded by the device",
	"ata_sct_status/temperature/current": "Current temperature reported by SCT status",
	"ata_sct_erc/read":                   "SCT error recovery control read timeout",
	"ata_sct_erc/write":                  "SCT error recovery control write timeout",
}

// attributeIndex is built once; callers only read it.
var attributeIndex = func() map[int][]AttributeDescription {
	idx := make(map[int][]AttributeDescription, len(attributeDescriptions))
	for _, d := range attributeDescriptions {
		idx[d.ID] = append(idx[d.ID], d)
	}
	return idx
}()

// LookupAttribute returns the reference entry for an attribute ID, preferring
// an entry specific to diskType over the generic one. DiskTypeAny falls back
// to a type-specific entry when the ID has no generic one.
func LookupAttribute(id int, diskType DiskType) (AttributeDescription, bool) {
	entries := attributeIndex[id]
	var generic *AttributeDescription
	for i, d := range entries {
		if d.DiskType == diskType && diskType != DiskTypeAny {
			return d, true
		}
		if d.DiskType == DiskTypeAny && generic == nil {
			generic = &entries[i]
		}
	}
	if generic != nil {
		return *generic, true
	}
	if diskType == DiskTypeAny && len(entries) > 0 {
		return entries[0], true
	}
	return AttributeDescription{}, false
}

// describe returns the reference description for a generic key.
func describe(key string, diskType DiskType) string {
	if id, ok := attributeIDFromKey(key); ok {
		if d, ok := LookupAttribute(id, diskType); ok {
			return d.Description
		}
		return ""
	}
	return genericDescriptions[key]
}

func attributeIDFromKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, attributeKeyPrefix)
	if !ok || !isDigits(rest) {
		return 0, false
	}
	id, ok := leadingInt(rest)
	return int(id), ok
}
