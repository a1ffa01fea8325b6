package config

// RFM69 register values for continuous OOK transmission keyed from DIO2.
const (
	// Continuous mode without bit synchronizer, OOK, no shaping.
	DATAMODUL = 0x68
	// PA0 off, PA1 on. DIO2 is only sampled as the modulation input with
	// PA1 selected.
	PALEVEL = 0x5f

	OPMODE_TX      = 0x0c
	OPMODE_STANDBY = 0x04

	// Silicon revision reported by RFM69 modules.
	VERSION = 0x24

	// RTS carrier, in kHz.
	FREQUENCY_KHZ = 433420
)
