package main

import "bytes"
import "flag"
import "fmt"
import "math/rand"
import "strconv"
import "time"

import "github.com/bnclabs/goring/api"

var verifyopts struct {
	engine   string
	repeat   int
	seed     int
	keyspace int
	vtick    int
	opdump   bool
	args     []string
}

func parseVerifyopts(args []string) {
	f := flag.NewFlagSet("verify", flag.ExitOnError)

	seed := time.Now().UTC().Second()
	f.StringVar(&verifyopts.engine, "engine", "llrb",
		"llrb | dict, container to verify")
	f.IntVar(&verifyopts.repeat, "repeat", 10000,
		"number of operations to generate")
	f.IntVar(&verifyopts.seed, "seed", seed,
		"seed value for generating inputs")
	f.IntVar(&verifyopts.keyspace, "keyspace", 1000,
		"number of distinct keys to cycle through")
	f.IntVar(&verifyopts.vtick, "vtick", 1000,
		"validate the container every vtick operations")
	f.BoolVar(&verifyopts.opdump, "opdump", false,
		"dump generated ops")
	f.Parse(args)

	verifyopts.args = f.Args()
}

// doVerify drive random upserts, lookups and deletes against the
// chosen engine and a reference map, panic on the first divergence.
func doVerify(args []string) {
	parseVerifyopts(args)

	fmt.Printf("seed: %v\n", verifyopts.seed)

	engine := newengine(verifyopts.engine, 0)
	ref := map[string][]byte{}
	src := rand.New(rand.NewSource(int64(verifyopts.seed)))

	stats := map[string]int{}
	for i := 0; i < verifyopts.repeat; i++ {
		key := makeverifykey(src)
		switch src.Intn(5) {
		case 0, 1, 2:
			value := []byte(strconv.Itoa(src.Intn(1000000)))
			if verifyopts.opdump {
				fmt.Printf("cmd set %s %s\n", key, value)
			}
			stats = opSet(engine, ref, key, value, stats)
		case 3:
			if verifyopts.opdump {
				fmt.Printf("cmd get %s\n", key)
			}
			stats = opGet(engine, ref, key, stats)
		case 4:
			if verifyopts.opdump {
				fmt.Printf("cmd delete %s\n", key)
			}
			stats = opDelete(engine, ref, key, stats)
		}
		if (i+1)%verifyopts.vtick == 0 {
			verifycount(engine, ref)
			engine.Validate()
		}
	}
	verifycount(engine, ref)
	engine.Validate()

	// drain the engine against the reference
	keys := make([]string, 0, len(ref))
	for key := range ref {
		keys = append(keys, key)
	}
	for _, key := range keys {
		stats = opDelete(engine, ref, []byte(key), stats)
	}
	if engine.IsEmpty() == false {
		panic(fmt.Errorf("expected drained engine, count %v", engine.Count()))
	}
	engine.Validate()

	fmt.Printf(
		"verified %v ops: %v fresh-sets %v up-sets %v gets %v deletes\n",
		stats["total"], stats["set.fresh"], stats["set.update"],
		stats["get.ok"]+stats["get.na"], stats["delete.ok"]+stats["delete.na"])
	engine.Log("", true)
	engine.Destroy()
}

func opSet(
	engine api.Container[[]byte, []byte], ref map[string][]byte,
	key, value []byte, stats map[string]int) map[string]int {

	old, updated := engine.Set(key, value)
	refold, refok := ref[string(key)]
	if updated != refok {
		panic(fmt.Errorf("set %s: expected updated %v, got %v",
			key, refok, updated))
	} else if refok && bytes.Compare(old, refold) != 0 {
		panic(fmt.Errorf("set %s: expected old %s, got %s", key, refold, old))
	}
	ref[string(key)] = value

	stats["total"]++
	if updated {
		stats["set.update"]++
	} else {
		stats["set.fresh"]++
	}
	return stats
}

func opGet(
	engine api.Container[[]byte, []byte], ref map[string][]byte,
	key []byte, stats map[string]int) map[string]int {

	value, ok := engine.Get(key)
	refvalue, refok := ref[string(key)]
	if ok != refok {
		panic(fmt.Errorf("get %s: expected %v, got %v", key, refok, ok))
	} else if ok && bytes.Compare(value, refvalue) != 0 {
		panic(fmt.Errorf("get %s: expected %s, got %s", key, refvalue, value))
	}

	stats["total"]++
	if ok {
		stats["get.ok"]++
	} else {
		stats["get.na"]++
	}
	return stats
}

func opDelete(
	engine api.Container[[]byte, []byte], ref map[string][]byte,
	key []byte, stats map[string]int) map[string]int {

	value, ok := engine.Delete(key)
	refvalue, refok := ref[string(key)]
	if ok != refok {
		panic(fmt.Errorf("delete %s: expected %v, got %v", key, refok, ok))
	} else if ok && bytes.Compare(value, refvalue) != 0 {
		panic(fmt.Errorf("delete %s: expected %s, got %s",
			key, refvalue, value))
	}
	delete(ref, string(key))

	stats["total"]++
	if ok {
		stats["delete.ok"]++
	} else {
		stats["delete.na"]++
	}
	return stats
}

func verifycount(engine api.Container[[]byte, []byte], ref map[string][]byte) {
	if count := engine.Count(); count != int64(len(ref)) {
		panic(fmt.Errorf("expected count %v, got %v", len(ref), count))
	}
}

func makeverifykey(src *rand.Rand) []byte {
	return []byte(strconv.Itoa(src.Intn(verifyopts.keyspace)))
}
