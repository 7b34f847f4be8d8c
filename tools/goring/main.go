package main

import "fmt"
import "os"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"

import "github.com/bnclabs/goring/api"
import "github.com/bnclabs/goring/dict"
import "github.com/bnclabs/goring/llrb"

func main() {
	setts := map[string]interface{}{"log.level": "info"}
	log.SetLogger(nil, setts)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch cmd := os.Args[1]; cmd {
	case "load":
		doLoad(os.Args[2:])
	case "verify":
		doVerify(os.Args[2:])
	default:
		fmt.Printf("unknown command %v\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("usage: goring <load|verify> [-options]\n")
	fmt.Printf("  goring load -engine llrb -n 100000\n")
	fmt.Printf("  goring verify -engine dict -repeat 100000\n")
}

func newengine(name string, capacity int64) api.Container[[]byte, []byte] {
	switch name {
	case "llrb":
		setts := s.Settings{}
		if capacity > 0 {
			setts["arena.capacity"] = capacity
		}
		return llrb.NewTree[[]byte, []byte]("cmdline", api.Cmpbytes, setts)
	case "dict":
		setts := s.Settings{}
		return dict.NewMap[[]byte, []byte](
			"cmdline", api.Hashbytes, api.Equalbytes, setts)
	}
	panic(fmt.Errorf("unknown engine %v", name))
}
