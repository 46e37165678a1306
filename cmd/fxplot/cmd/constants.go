package cmd

import (
	"fmt"

	"github.com/avdva/fixedpoint"
	"github.com/spf13/cobra"
)

var constantsBits []int

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print pi, ln2 and e at the given resolutions",
	Long: `Evaluates the cached mathematical constants at each requested
fraction-bit count and estimates how many of the computed bits are
correct, by comparing against a higher-precision reference.`,
	RunE: runConstants,
}

func init() {
	constantsCmd.Flags().IntSliceVar(&constantsBits, "bits", []int{8, 32, 80, 274}, "fraction bit counts to evaluate")
	rootCmd.AddCommand(constantsCmd)
}

func runConstants(cmd *cobra.Command, args []string) error {
	consts := []struct {
		name string
		get  func(*fixedpoint.Format) (fixedpoint.Number, error)
	}{
		{"pi", (*fixedpoint.Format).Pi},
		{"ln2", (*fixedpoint.Format).Ln2},
		{"e", (*fixedpoint.Format).E},
	}
	for _, bits := range constantsBits {
		f, err := fixedpoint.NewUnbounded(bits)
		if err != nil {
			return err
		}
		// reference precision chosen as in the classic pi-accuracy table
		accBits := bits + bits/4 + 20
		acc, err := fixedpoint.NewUnbounded(accBits)
		if err != nil {
			return err
		}
		fmt.Printf("=== %d bits ===\n", bits)
		for _, c := range consts {
			val, err := c.get(f)
			if err != nil {
				return err
			}
			ref, err := c.get(acc)
			if err != nil {
				return err
			}
			conv, err := val.Convert(acc)
			if err != nil {
				return err
			}
			delta, err := conv.Sub(ref)
			if err != nil {
				return err
			}
			delta, err = delta.Abs()
			if err != nil {
				return err
			}
			good := bits
			if !delta.IsZero() {
				good = accBits - delta.Scaled().BitLen() + 1
				if good > bits {
					good = bits
				}
			}
			fmt.Printf("%-4s ~ %s (%d/%d bits correct)\n", c.name, val, good, bits)
		}
		fmt.Println()
	}
	return nil
}
