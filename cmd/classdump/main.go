/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobin-corevm/corevm/internal/classfile"
	"github.com/jacobin-corevm/corevm/internal/globals"
	"github.com/jacobin-corevm/corevm/internal/trace"
)

var dumpClassFiles bool

func dump(cmd *cobra.Command, args []string) error {
	path := args[0]
	g := globals.GetGlobalRef()
	g.DumpClassFiles = dumpClassFiles

	mc, err := classfile.LoadFile(path, false)
	if err != nil {
		trace.Error("classdump: " + path + ": " + err.Error())
		return err
	}
	defer mc.Close()

	name, err := mc.Name()
	if err != nil {
		trace.Error("classdump: " + path + ": " + err.Error())
		return err
	}
	superName, err := mc.SuperName()
	if err != nil {
		trace.Error("classdump: " + path + ": " + err.Error())
		return err
	}

	fmt.Printf("class %s\n", name)
	fmt.Printf("  major/minor: %d/%d\n", mc.MajorVersion, mc.MinorVersion)
	fmt.Printf("  super: %s\n", superName)
	fmt.Printf("  access_flags: 0x%04X\n", mc.AccessFlags)
	fmt.Printf("  constant_pool: %d entries\n", mc.ConstantPool.Size())
	fmt.Printf("  interfaces: %d\n", len(mc.Interfaces))
	fmt.Printf("  fields: %d\n", len(mc.Fields))
	fmt.Printf("  methods: %d\n", len(mc.Methods))
	fmt.Printf("  attributes: %d\n", len(mc.Attributes))

	if dumpClassFiles {
		for _, m := range mc.Methods {
			methodName, _ := mc.ConstantPool.Utf8(int(m.NameIndex))
			descriptor, _ := mc.ConstantPool.Utf8(int(m.DescriptorIndex))
			fmt.Printf("  method %s%s\n", methodName, descriptor)
		}
	}

	return nil
}

func main() {
	if err := trace.Init("info"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer trace.Sync()

	rootCmd := &cobra.Command{
		Use:   "classdump <path>",
		Short: "Decode and summarize a Java class file",
		Long:  "classdump decodes a single .class file and prints its constant pool, field, method, and attribute counts.",
		Args:  cobra.ExactArgs(1),
		RunE:  dump,
	}
	rootCmd.Flags().BoolVarP(&dumpClassFiles, "dump-class-files", "d", false, "also list every method name and descriptor")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
