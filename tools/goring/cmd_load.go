package main

import "flag"
import "fmt"
import "math/rand"
import "strconv"
import "strings"
import "time"

import "github.com/cloudfoundry/gosigar"
import hm "github.com/dustin/go-humanize"

import "github.com/bnclabs/goring/api"

var loadopts struct {
	engine   string
	n        int
	klen     [2]int // min-klen, max-klen
	vlen     [2]int // min-vlen, max-vlen
	seed     int
	capacity int64
	args     []string
}

func parseLoadopts(args []string) {
	f := flag.NewFlagSet("load", flag.ExitOnError)

	var klen, vlen string

	f.StringVar(&loadopts.engine, "engine", "llrb",
		"llrb | dict, container to load")
	f.IntVar(&loadopts.n, "n", 1000,
		"number of items to generate and insert")
	f.StringVar(&klen, "klen", "",
		"minklen,maxklen - generate keys between [minklen,maxklen)")
	f.StringVar(&vlen, "vlen", "",
		"minvlen,maxvlen - generate values between [minvlen,maxvlen)")
	f.IntVar(&loadopts.seed, "seed", 2018,
		"seed value for generating inputs")
	f.Int64Var(&loadopts.capacity, "capacity", 0,
		"arena capacity in bytes, for the llrb engine")
	f.Parse(args)

	loadopts.args = f.Args()

	loadopts.klen = [2]int{16, 32}
	if klen != "" {
		for i, s := range strings.Split(klen, ",") {
			ln, _ := strconv.Atoi(s)
			loadopts.klen[i] = ln
		}
	}
	loadopts.vlen = [2]int{16, 32}
	if vlen != "" {
		for i, s := range strings.Split(vlen, ",") {
			ln, _ := strconv.Atoi(s)
			loadopts.vlen[i] = ln
		}
	}
}

func doLoad(args []string) {
	parseLoadopts(args)

	engine := newengine(loadopts.engine, loadopts.capacity)
	src := rand.New(rand.NewSource(int64(loadopts.seed)))

	now := time.Now()
	inserted := insertitems(engine, src, loadopts.n)
	took := time.Since(now)

	rate := int64(float64(inserted) / took.Seconds())
	fmt.Printf("loaded %v items in %v, %v items/sec\n",
		hm.Comma(int64(inserted)), took, hm.Comma(rate))
	mem := sigar.Mem{}
	if err := mem.Get(); err == nil {
		fmt.Printf("system memory %v used of %v\n",
			hm.Bytes(mem.ActualUsed), hm.Bytes(mem.Total))
	}
	engine.Validate()
	engine.Log("full", true)
	engine.Destroy()
}

func insertitems(
	engine api.Container[[]byte, []byte], src *rand.Rand,
	count int) (inserted int) {

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("panic after %v items: %v\n", inserted, r)
		}
	}()
	for i := 0; i < count; i++ {
		key, value := makekeyval(src)
		engine.Set(key, value)
		inserted++
	}
	return inserted
}

func makekeyval(src *rand.Rand) (key, value []byte) {
	min, max := loadopts.klen[0], loadopts.klen[1]
	key = make([]byte, src.Intn(max-min)+min)
	for i := range key {
		key[i] = byte(97 + src.Intn(26))
	}

	min, max = loadopts.vlen[0], loadopts.vlen[1]
	value = make([]byte, src.Intn(max-min)+min)
	for i := range value {
		value[i] = byte(97 + src.Intn(26))
	}
	return key, value
}
