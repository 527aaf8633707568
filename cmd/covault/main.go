// Command covault runs an in-memory vault and replays an operation
// script against it, printing every emitted record as a JSON line.
//
// The genesis file carries the initial state, for example:
//
//	{
//	  "custody": {"owners": ["C0FFEE..", "BEEF.."], "threshold": 2},
//	  "cash": [{"address": "C0FFEE..", "amount": {"whole": 10, "ticker": "IOV"}}]
//	}
//
// The script is one operation per line, with callers referenced by
// name. Use the addr subcommand to learn the address a name maps to
// when authoring a genesis file.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	flag "github.com/spf13/pflag"

	"github.com/covault/covault"
	"github.com/covault/covault/coin"
	"github.com/covault/covault/errors"
	"github.com/covault/covault/store"
	"github.com/covault/covault/x/attest"
	"github.com/covault/covault/x/cash"
	"github.com/covault/covault/x/custody"
)

type configuration struct {
	Genesis string `env:"COVAULT_GENESIS"`
	Script  string `env:"COVAULT_SCRIPT"`
	Budget  uint64 `env:"COVAULT_EXEC_BUDGET" envDefault:"100000"`
}

func main() {
	var conf configuration
	if err := env.Parse(&conf); err != nil {
		fail(errors.Wrap(err, "cannot parse environment"))
	}
	flag.StringVar(&conf.Genesis, "genesis", conf.Genesis, "path to the genesis file")
	flag.StringVar(&conf.Script, "script", conf.Script, "path to the operation script, - for stdin")
	flag.Uint64Var(&conf.Budget, "budget", conf.Budget, "compute budget handed to external calls")
	flag.Parse()

	// covault addr <name>... prints the address each caller name
	// resolves to.
	if args := flag.Args(); len(args) > 0 && args[0] == "addr" {
		for _, name := range args[1:] {
			fmt.Printf("%s\t%s\n", name, attest.Caller([]byte(name)).Address())
		}
		return
	}

	if err := run(conf, os.Stdout); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "covault: %+v\n", err)
	os.Exit(1)
}

func run(conf configuration, out io.Writer) error {
	if conf.Genesis == "" {
		return errors.Wrap(errors.ErrInput, "genesis file is required")
	}
	if conf.Script == "" {
		return errors.Wrap(errors.ErrInput, "operation script is required")
	}

	enc := json.NewEncoder(out)
	emitter := covault.EmitterFunc(func(ev covault.Event) {
		_ = enc.Encode(ev)
	})

	db := store.MemStore()
	raw, err := os.ReadFile(conf.Genesis)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis")
	}
	var opts covault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(err, "cannot parse genesis")
	}
	for _, ini := range []covault.Initializer{
		cash.Initializer{},
		custody.Initializer{Emitter: emitter},
	} {
		if err := ini.FromGenesis(opts, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}

	svc := custody.NewService(db, attest.Authenticate{}, custody.Options{
		Emitter: emitter,
		Invoker: printingInvoker{enc: enc},
		Budget:  conf.Budget,
	})

	script := os.Stdin
	if conf.Script != "-" {
		f, err := os.Open(conf.Script)
		if err != nil {
			return errors.Wrap(err, "cannot open script")
		}
		defer f.Close()
		script = f
	}
	return replay(svc, script, out)
}

// printingInvoker stands in for the external environment: it reports
// every call as a JSON line and accepts it.
type printingInvoker struct {
	enc *json.Encoder
}

func (p printingInvoker) Invoke(_ covault.Context, call custody.Call) error {
	return p.enc.Encode(struct {
		Type        string `json:"type"`
		Destination string `json:"destination"`
		Amount      string `json:"amount"`
		Payload     string `json:"payload,omitempty"`
		Budget      uint64 `json:"budget"`
	}{
		Type:        "external/call",
		Destination: call.Destination.String(),
		Amount:      call.Amount.String(),
		Payload:     hex.EncodeToString(call.Payload),
		Budget:      call.Budget,
	})
}

// replay feeds the script to the service line by line. A malformed line
// aborts the replay; a rejected operation is reported and the replay
// continues, so that scripts can demonstrate refusals.
func replay(svc *custody.Service, src io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(src)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := apply(svc, strings.Fields(line), out); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return sc.Err()
}

func apply(svc *custody.Service, args []string, out io.Writer) error {
	report := func(err error) {
		if err != nil {
			fmt.Fprintf(out, "%s refused: %v\n", args[0], err)
		}
	}

	switch op := args[0]; op {
	case "receive":
		// receive <from> <amount>
		if len(args) != 3 {
			return errors.Wrap(errors.ErrInput, "want: receive <from> <amount>")
		}
		amount, err := coin.ParseHumanFormat(args[2])
		if err != nil {
			return err
		}
		report(svc.Receive(resolveAddress(args[1]), amount))

	case "submit":
		// submit <owner> <destination> <amount> [payload]
		if len(args) != 4 && len(args) != 5 {
			return errors.Wrap(errors.ErrInput, "want: submit <owner> <destination> <amount> [payload]")
		}
		amount, err := coin.ParseHumanFormat(args[3])
		if err != nil {
			return err
		}
		var payload []byte
		if len(args) == 5 {
			payload = []byte(args[4])
		}
		id, err := svc.Submit(callerCtx(args[1]), resolveAddress(args[2]), amount, payload)
		if err == nil {
			fmt.Fprintf(out, "proposal %d\n", id)
		}
		report(err)

	case "confirm", "execute", "cancel":
		// <op> <owner> <id>
		if len(args) != 3 {
			return errors.Wrapf(errors.ErrInput, "want: %s <owner> <id>", op)
		}
		id, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "proposal id")
		}
		ctx := callerCtx(args[1])
		switch op {
		case "confirm":
			report(svc.Confirm(ctx, id))
		case "execute":
			report(svc.Execute(ctx, id))
		case "cancel":
			report(svc.Cancel(ctx, id))
		}

	case "amend":
		// amend <owner> <threshold>
		if len(args) != 3 {
			return errors.Wrap(errors.ErrInput, "want: amend <owner> <threshold>")
		}
		threshold, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "threshold")
		}
		report(svc.Amend(callerCtx(args[1]), uint32(threshold)))

	case "balance":
		held, err := svc.Balance()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "balance %s\n", held)

	case "owners":
		owners, err := svc.Owners()
		if err != nil {
			return err
		}
		threshold, err := svc.Threshold()
		if err != nil {
			return err
		}
		for _, o := range owners {
			fmt.Fprintf(out, "owner %s\n", o)
		}
		fmt.Fprintf(out, "threshold %d\n", threshold)

	case "proposal":
		// proposal <id>
		if len(args) != 2 {
			return errors.Wrap(errors.ErrInput, "want: proposal <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrInput, "proposal id")
		}
		prop, err := svc.Proposal(id)
		if err != nil {
			report(err)
			return nil
		}
		return json.NewEncoder(out).Encode(prop)

	default:
		return errors.Wrapf(errors.ErrInput, "unknown operation %q", op)
	}
	return nil
}

// callerCtx attests the named principal as the caller.
func callerCtx(name string) covault.Context {
	return attest.WithCaller(context.Background(), attest.Caller([]byte(name)))
}

// resolveAddress accepts either a hex address or a caller name.
func resolveAddress(s string) covault.Address {
	if addr, err := covault.ParseAddress(s); err == nil {
		return addr
	}
	return attest.Caller([]byte(s)).Address()
}
