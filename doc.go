// Package wave reads, transforms and writes RIFF/WAVE containers holding
// uncompressed linear PCM.
//
// A file goes through a linear pipeline:
//
//   - Scanner walks the container chunk by chunk and extracts the RIFF
//     header, the fmt chunk and the data payload. LIST chunks are skipped and
//     an unrecognized chunk ends the scan.
//   - Profile.Validate gates the fmt chunk before any sample is touched.
//   - Apply rewrites the 16-bit samples of the data payload in place using a
//     Multiplier of (sample index, channel, sample rate).
//   - Encoder serializes riff, fmt and data again, recomputing the RIFF size.
//
// Pipeline wires the four steps together for the common case:
//
//	p := wave.NewPipeline()
//	err := p.ProcessFile("out.wav", "in.wav")
//
// Chunk sizes are checked against the stream length before anything is
// allocated, and odd-sized chunks are not padded.
package wave
