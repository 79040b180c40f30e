// Package checkpoint saves and restores the parameters of a network together
// with the training state needed to resume.
//
// File layout:
//
//	[0x00-0x03: Magic "MGRD"]
//	[0x04-0x07: Version (uint32 LE)]
//	[0x08-0x0B: Flags (uint32 LE)]
//	[0x0C-0x0F: Reserved]
//	[0x10-0x17: Header size (uint64 LE)]
//	[0x18-0x1F: Data size (uint64 LE)]
//	[0x20-0x3F: SHA-256 of the data section]
//	[Header: JSON]
//	[Data: one float64 LE per parameter, in header order]
//
// Example usage:
//
//	ckpt := checkpoint.New(model.Parameters())
//	ckpt.Header.Checkpoint = &checkpoint.TrainingState{Epoch: 99, Loss: loss}
//	if err := checkpoint.Save("model.mgrd", ckpt); err != nil {
//	    return err
//	}
//
//	ckpt, err := checkpoint.Load("model.mgrd")
//	if err != nil {
//	    return err
//	}
//	if err := ckpt.Restore(model.Parameters()); err != nil {
//	    return err
//	}
package checkpoint
