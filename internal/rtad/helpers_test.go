package rtad

import "fmt"

func lastb(id int64, ts, ip string) Entry {
	return LastbEntry{
		ID:            id,
		IPAddress:     ip,
		Country:       "Unknown",
		City:          "Unknown",
		Timestamp:     ts,
		User:          "root",
		FailureReason: "Failed password",
	}
}

func proxy(id int64, domain string, code int) Entry {
	return ProxyEntry{
		ID:        id,
		Domain:    domain,
		IPAddress: fmt.Sprintf("10.0.0.%d", id),
		Timestamp: fmt.Sprintf("2024-03-01T10:00:%02d+00:00", id%60),
		ProxyType: "nginx",
		ErrorCode: code,
		URL:       "/",
	}
}

// lastbRange returns entries with ids from..to inclusive.
func lastbRange(from, to int64) []Entry {
	var out []Entry
	for id := from; id <= to; id++ {
		out = append(out, lastb(id, fmt.Sprintf("2024-03-01T10:%02d:00+00:00", id%60), fmt.Sprintf("192.0.2.%d", id)))
	}
	return out
}
