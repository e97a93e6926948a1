package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/wave"
	"github.com/cwbudde/wave/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	logger, err := logging.New("info", os.Stderr)
	if err != nil {
		panic(err)
	}

	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal(err)
	}
}

func run(args []string, logger logrus.FieldLogger) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	amplitude := flagSet.Float64("amplitude", 1, "peak amplitude between 0 and 1")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *length < 0 || *amplitude < 0 || *amplitude > 1 {
		return fmt.Errorf("invalid length %f or amplitude %f", *length, *amplitude)
	}

	logger.WithFields(logrus.Fields{
		"length":    *length,
		"frequency": *frequency,
		"output":    *output,
	}).Info("generating a stereo sine wav")

	const sampleRate = 48000

	numSamples := int(sampleRate * *length)
	data := make([]byte, 0, numSamples*4)

	for i := 0; i < numSamples; i++ {
		fv := math.Sin(float64(i) / sampleRate * *frequency * 2 * math.Pi)
		v := uint16(int16(math.Round(fv * *amplitude * math.MaxInt16)))

		// same sample on both channels
		data = binary.LittleEndian.AppendUint16(data, v)
		data = binary.LittleEndian.AppendUint16(data, v)
	}

	f := &wave.File{
		Fmt:  wave.NewPCMHeader(2, sampleRate, 16),
		Data: &wave.DataChunk{Size: uint32(len(data)), Data: data},
	}

	if err := wave.WriteFile(*output, f); err != nil {
		return fmt.Errorf("error writing %s: %w", *output, err)
	}

	return nil
}
