package events

import "github.com/atomicstack/tui-greeter/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Append(name, kind string, total int) {
	logging.Trace("session.append", map[string]interface{}{"name": name, "kind": kind, "total": total})
}

func (SessionTracer) Cursor(cursor int, name string) {
	logging.Trace("session.cursor", map[string]interface{}{"cursor": cursor, "name": name})
}

func (SessionTracer) CrawlError(dir string, err error) {
	if err == nil {
		return
	}
	logging.Trace("session.crawl.error", map[string]interface{}{"dir": dir, "error": err.Error()})
}

func (SessionTracer) Default(query string, index int) {
	logging.Trace("session.default", map[string]interface{}{"query": query, "index": index})
}
