package hardware

import (
	"fmt"
	"sort"
	"strings"
)

// Sensor is the input type a channel is configured for.
type Sensor string

const (
	SensorNotUsed       Sensor = "NotUsed"
	SensorVoltage0To10  Sensor = "0-10V"
	SensorVoltagePM10   Sensor = "+/-10V"
	SensorCurrent0To20  Sensor = "0-20mA"
	SensorCurrent4To20  Sensor = "4-20mA"
	SensorPt100         Sensor = "Pt100"
	SensorPt1000        Sensor = "Pt1000"
	SensorNi100         Sensor = "Ni100"
	SensorNi1000        Sensor = "Ni1000"
	SensorThermocoupleJ Sensor = "TC-J"
	SensorThermocoupleK Sensor = "TC-K"
	SensorThermistorNTC Sensor = "NTC"
	SensorThermistorPTC Sensor = "PTC"
)

var sensors = []Sensor{
	SensorNotUsed, SensorVoltage0To10, SensorVoltagePM10, SensorCurrent0To20, SensorCurrent4To20,
	SensorPt100, SensorPt1000, SensorNi100, SensorNi1000,
	SensorThermocoupleJ, SensorThermocoupleK, SensorThermistorNTC, SensorThermistorPTC,
}

// ParseSensor matches a sensor name case-insensitively.
func ParseSensor(s string) (Sensor, error) {
	for _, sensor := range sensors {
		if strings.EqualFold(string(sensor), strings.TrimSpace(s)) {
			return sensor, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSensor, s)
}

// Sampling is the conversion rate of a channel.
type Sampling string

const (
	SamplingNormal Sampling = "Normal"
	SamplingFast   Sampling = "Fast"
)

// ParseSampling accepts Normal and Fast; empty means Normal.
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SamplingNormal, nil
	case "fast":
		return SamplingFast, nil
	}
	return "", fmt.Errorf("%w: unknown sampling %q", ErrUnsupportedSensor, s)
}

// Module is a catalogue entry.
type Module struct {
	Reference   string
	Description string
	Capacity    int
	Sensors     []Sensor
}

// Supports reports whether the module accepts sensor. NotUsed is always accepted.
func (m Module) Supports(sensor Sensor) bool {
	if sensor == SensorNotUsed {
		return true
	}
	for _, s := range m.Sensors {
		if s == sensor {
			return true
		}
	}
	return false
}

var (
	voltageCurrent = []Sensor{SensorVoltage0To10, SensorVoltagePM10, SensorCurrent0To20, SensorCurrent4To20}
	temperature    = []Sensor{
		SensorVoltage0To10, SensorVoltagePM10, SensorCurrent0To20, SensorCurrent4To20,
		SensorPt100, SensorPt1000, SensorNi100, SensorNi1000, SensorThermocoupleJ, SensorThermocoupleK,
	}
)

var catalogue = map[string]Module{
	"TM3AI2/G":  {Reference: "TM3AI2/G", Description: "2 analog inputs, voltage or current", Capacity: 2, Sensors: voltageCurrent},
	"TM3AI4/G":  {Reference: "TM3AI4/G", Description: "4 analog inputs, voltage or current", Capacity: 4, Sensors: voltageCurrent},
	"TM3AI8/G":  {Reference: "TM3AI8/G", Description: "8 analog inputs, voltage or current", Capacity: 8, Sensors: voltageCurrent},
	"TM3TI4/G":  {Reference: "TM3TI4/G", Description: "4 temperature inputs", Capacity: 4, Sensors: temperature},
	"TM3TI8T/G": {Reference: "TM3TI8T/G", Description: "8 thermocouple or thermistor inputs", Capacity: 8, Sensors: []Sensor{SensorThermocoupleJ, SensorThermocoupleK, SensorThermistorNTC, SensorThermistorPTC}},
	"TM3AM6/G":  {Reference: "TM3AM6/G", Description: "4 analog inputs and 2 analog outputs", Capacity: 6, Sensors: voltageCurrent},
}

// Lookup returns the catalogue entry of reference.
func Lookup(reference string) (Module, error) {
	m, ok := catalogue[strings.ToUpper(strings.TrimSpace(reference))]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrUnknownModule, reference)
	}
	return m, nil
}

// References lists the catalogue in alphabetical order.
func References() []string {
	out := make([]string, 0, len(catalogue))
	for ref := range catalogue {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}
