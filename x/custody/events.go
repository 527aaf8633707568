package custody

import (
	"strconv"
	"strings"

	"github.com/covault/covault"
	"github.com/covault/covault/coin"
)

// Event types published by the custody extension. One record per state
// change, in the causal order of the triggering calls.
const (
	EventInitialized      = "custody/initialized"
	EventDeposited        = "custody/deposited"
	EventProposed         = "custody/proposed"
	EventConfirmed        = "custody/confirmed"
	EventExecuted         = "custody/executed"
	EventExecutionFailed  = "custody/execution_failed"
	EventCancelled        = "custody/cancelled"
	EventThresholdAmended = "custody/threshold_amended"
)

func initializedEvent(c *Config) covault.Event {
	owners := make([]string, len(c.Owners))
	for i, o := range c.Owners {
		owners[i] = o.String()
	}
	return covault.Event{
		Type: EventInitialized,
		Attributes: []covault.Attribute{
			covault.Attr("owners", strings.Join(owners, ",")),
			covault.Attr("threshold", strconv.FormatUint(uint64(c.Threshold), 10)),
		},
	}
}

func depositedEvent(from covault.Address, amount coin.Coin) covault.Event {
	return covault.Event{
		Type: EventDeposited,
		Attributes: []covault.Attribute{
			covault.Attr("from", from.String()),
			covault.Attr("amount", amount.String()),
		},
	}
}

func proposedEvent(id int64, proposer covault.Address, p *Proposal) covault.Event {
	return covault.Event{
		Type: EventProposed,
		Attributes: []covault.Attribute{
			covault.Attr("proposal", strconv.FormatInt(id, 10)),
			covault.Attr("proposer", proposer.String()),
			covault.Attr("destination", p.Destination.String()),
			covault.Attr("amount", p.Amount.String()),
		},
	}
}

func confirmedEvent(id int64, owner covault.Address) covault.Event {
	return covault.Event{
		Type: EventConfirmed,
		Attributes: []covault.Attribute{
			covault.Attr("proposal", strconv.FormatInt(id, 10)),
			covault.Attr("owner", owner.String()),
		},
	}
}

func executedEvent(id int64, owner covault.Address) covault.Event {
	return covault.Event{
		Type: EventExecuted,
		Attributes: []covault.Attribute{
			covault.Attr("proposal", strconv.FormatInt(id, 10)),
			covault.Attr("owner", owner.String()),
		},
	}
}

func executionFailedEvent(id int64, cause error) covault.Event {
	return covault.Event{
		Type: EventExecutionFailed,
		Attributes: []covault.Attribute{
			covault.Attr("proposal", strconv.FormatInt(id, 10)),
			covault.Attr("cause", cause.Error()),
		},
	}
}

func cancelledEvent(id int64, owner covault.Address) covault.Event {
	return covault.Event{
		Type: EventCancelled,
		Attributes: []covault.Attribute{
			covault.Attr("proposal", strconv.FormatInt(id, 10)),
			covault.Attr("owner", owner.String()),
		},
	}
}

func thresholdAmendedEvent(threshold uint32, owner covault.Address) covault.Event {
	return covault.Event{
		Type: EventThresholdAmended,
		Attributes: []covault.Attribute{
			covault.Attr("threshold", strconv.FormatUint(uint64(threshold), 10)),
			covault.Attr("owner", owner.String()),
		},
	}
}
