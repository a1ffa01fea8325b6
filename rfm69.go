package somfy

import (
	"fmt"
	"sync"
	"time"

	"github.com/hatstand/somfy/config"
	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
	"go.uber.org/zap"
)

const (
	// Read/write flags.
	WRITE = 0x80
	READ  = 0x00

	// Registers
	REG_FIFO      = 0x00
	REG_OPMODE    = 0x01
	REG_DATAMODUL = 0x02
	REG_FRFMSB    = 0x07
	REG_FRFMID    = 0x08
	REG_FRFLSB    = 0x09
	REG_VERSION   = 0x10
	REG_PALEVEL   = 0x11

	LAST_REGISTER = 0x71

	// Crystal oscillator in Hz. FRF = carrier * 2^19 / FXOSC.
	FXOSC = 32000000
)

// SPIBus is the part of embd.SPIBus the radio needs.
type SPIBus interface {
	TransferAndReceiveData(data []byte) error
	Close() error
}

// DigitalPin is the part of embd.DigitalPin the radio needs.
type DigitalPin interface {
	Write(val int) error
	Close() error
}

// RFM69 drives a HopeRF RFM69 in continuous OOK mode: the module only
// switches its carrier on and off, the modulation comes in on DIO2.
type RFM69 struct {
	bus    SPIBus
	reset  DigitalPin
	logger *zap.Logger
	lock   sync.Mutex
}

// NewRFM69 opens the SPI bus and reset pin through embd, resets the module
// and programs it for transmission at the configured carrier.
func NewRFM69(c config.Radio, logger *zap.Logger) (*RFM69, error) {
	if err := embd.InitSPI(); err != nil {
		return nil, fmt.Errorf("failed to initialize SPI: %w", err)
	}
	if err := embd.InitGPIO(); err != nil {
		embd.CloseSPI()
		return nil, fmt.Errorf("failed to initialize GPIO: %w", err)
	}

	reset, err := embd.NewDigitalPin(c.ResetPin)
	if err != nil {
		embd.CloseGPIO()
		embd.CloseSPI()
		return nil, fmt.Errorf("failed to open reset pin %d: %w", c.ResetPin, err)
	}
	if err := setOutput(reset, c.ResetPin); err != nil {
		reset.Close()
		embd.CloseGPIO()
		embd.CloseSPI()
		return nil, err
	}

	bus := embd.NewSPIBus(embd.SPIMode0, c.SPIChannel, c.SPISpeed, 8, 0)

	r := NewRFM69WithBus(bus, reset, logger)
	if err := r.Reset(); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.SelfTest(); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.Init(c.FrequencyKHz); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

type directionPin interface {
	SetDirection(dir embd.Direction) error
}

func setOutput(p directionPin, pin int) error {
	if err := p.SetDirection(embd.Out); err != nil {
		return fmt.Errorf("failed to make reset pin %d an output: %w", pin, err)
	}
	return nil
}

func NewRFM69WithBus(bus SPIBus, reset DigitalPin, logger *zap.Logger) *RFM69 {
	return &RFM69{
		bus:    bus,
		reset:  reset,
		logger: logger,
	}
}

func (r *RFM69) Close() {
	r.EnterStandbyMode()
	r.bus.Close()
	r.reset.Close()
	embd.CloseGPIO()
	embd.CloseSPI()
}

func (r *RFM69) ReadSingleByte(address byte) (byte, error) {
	data := []byte{address &^ WRITE, 0x00}
	err := r.bus.TransferAndReceiveData(data)
	if err != nil {
		return 0x00, err
	}
	return data[1], nil
}

func (r *RFM69) WriteSingleByte(address byte, in byte) error {
	if address < 1 || address > LAST_REGISTER {
		return fmt.Errorf("invalid RFM69 register: %#02x", address)
	}
	data := []byte{address | WRITE, in}
	return r.bus.TransferAndReceiveData(data)
}

func (r *RFM69) WriteBurst(address byte, data []byte) error {
	var buf []byte
	buf = append(buf, address|WRITE)
	buf = append(buf, data...)
	return r.bus.TransferAndReceiveData(buf)
}

// Reset pulses the RESET line. The module needs 5ms after release.
func (r *RFM69) Reset() error {
	if err := r.reset.Write(embd.High); err != nil {
		return fmt.Errorf("failed to assert reset: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := r.reset.Write(embd.Low); err != nil {
		return fmt.Errorf("failed to release reset: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

func (r *RFM69) SelfTest() error {
	version, err := r.ReadSingleByte(REG_VERSION)
	if err != nil {
		return err
	}
	r.logger.Info("RFM69 found", zap.Uint8("version", version))
	if version != config.VERSION {
		return fmt.Errorf("self test failed: got version %#02x", version)
	}
	return nil
}

// Init sets continuous OOK mode on PA1 and the carrier frequency, then
// checks that the module kept the settings.
func (r *RFM69) Init(frequencyKHz int64) error {
	if err := r.WriteSingleByte(REG_DATAMODUL, config.DATAMODUL); err != nil {
		return err
	}
	if err := r.WriteSingleByte(REG_PALEVEL, config.PALEVEL); err != nil {
		return err
	}

	datamodul, err := r.ReadSingleByte(REG_DATAMODUL)
	if err != nil {
		return err
	}
	palevel, err := r.ReadSingleByte(REG_PALEVEL)
	if err != nil {
		return err
	}
	if datamodul != config.DATAMODUL || palevel != config.PALEVEL {
		return fmt.Errorf("radio did not keep its settings: DATAMODUL %#02x PALEVEL %#02x", datamodul, palevel)
	}

	if err := r.SetFrequency(frequencyKHz); err != nil {
		return err
	}
	return r.EnterStandbyMode()
}

// FrequencyRegister converts a carrier frequency to the 24-bit FRF value.
func FrequencyRegister(frequencyKHz int64) uint32 {
	return uint32(uint64(frequencyKHz) * 1000 * (1 << 19) / FXOSC)
}

func (r *RFM69) SetFrequency(frequencyKHz int64) error {
	frf := FrequencyRegister(frequencyKHz)
	r.logger.Info("Setting carrier",
		zap.Int64("khz", frequencyKHz),
		zap.String("frf", fmt.Sprintf("%#06x", frf)))
	return r.WriteBurst(REG_FRFMSB, []byte{byte(frf >> 16), byte(frf >> 8), byte(frf)})
}

func (r *RFM69) setMode(mode byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.WriteSingleByte(REG_OPMODE, mode)
}

func (r *RFM69) EnterTransmitMode() error {
	return r.setMode(config.OPMODE_TX)
}

func (r *RFM69) EnterStandbyMode() error {
	return r.setMode(config.OPMODE_STANDBY)
}
