// Package main provides a command-line utility to dump the structure
// of a Flattened Device Tree binary, printing its node hierarchy and
// property names similarly to the reference dtc dump tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-fdt/fdt"
	fdtindex "github.com/go-fdt/fdt/index"
)

func main() {
	indexed := flag.Bool("index", false, "use the indexed traversal engine instead of the lazy cursor")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: fdtdump [flags] <file.dtb>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	file := args[0]
	buf, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	tree, err := fdt.Open(buf)
	if err != nil {
		log.Fatalf("Failed to parse FDT: %v", err)
	}

	fmt.Printf("version: %d, last_comp_version: %d, boot_cpuid_phys: %d\n",
		tree.Version(), tree.LastCompatibleVersion(), tree.BootCpuidPhys())

	for i, entries := 0, tree.ReservedEntries(); ; i++ {
		entry, ok := entries.Next()
		if !ok {
			break
		}
		fmt.Printf("reserved: address=0x%x size=0x%x\n", entry.Address, entry.Size)
	}

	if *indexed {
		dumpIndexed(tree)
		return
	}
	dumpLazy(tree)
}

func dumpLazy(tree *fdt.Tree) {
	depth := 0
	it := tree.Items()
	for {
		item, ok := it.Next()
		if !ok {
			return
		}
		if n, isNode := item.Node(); isNode {
			name, err := n.NameString()
			if err != nil {
				log.Fatalf("bad node name: %v", err)
			}
			fmt.Printf("%*s%s {\n", depth*2, "", name)
			depth++
			continue
		}
		p, _ := item.Prop()
		name, err := p.NameString()
		if err != nil {
			log.Fatalf("bad property name: %v", err)
		}
		fmt.Printf("%*s%s; // %d bytes\n", depth*2, "", name, p.Length())
	}
}

func dumpIndexed(tree *fdt.Tree) {
	layout, err := fdtindex.RequiredLayout(tree)
	if err != nil {
		log.Fatalf("failed to size index: %v", err)
	}
	buf := make([]byte, layout.Size)
	idx, err := fdtindex.Build(tree, buf)
	if err != nil {
		log.Fatalf("failed to build index: %v", err)
	}

	root, ok := idx.Root()
	if !ok {
		fmt.Println("(empty tree)")
		return
	}
	dumpIndexedNode(root, 0)
}

func dumpIndexedNode(n fdtindex.Node, depth int) {
	name, err := n.NameString()
	if err != nil {
		log.Fatalf("bad node name: %v", err)
	}
	fmt.Printf("%*s%s {\n", depth*2, "", name)

	props := n.Props()
	for {
		p, ok := props.Next()
		if !ok {
			break
		}
		pname, err := p.NameString()
		if err != nil {
			log.Fatalf("bad property name: %v", err)
		}
		fmt.Printf("%*s%s; // %d bytes\n", (depth+1)*2, "", pname, p.Length())
	}

	children := n.Children()
	for {
		child, ok := children.Next()
		if !ok {
			break
		}
		dumpIndexedNode(child, depth+1)
	}
	fmt.Printf("%*s}\n", depth*2, "")
}
