package config

import (
	"bytes"
	"os"
	"text/template"
)

const ArkConfigTemplate = `network = "{{ .Network }}"
host = "{{ .Host }}"

server_port = {{ .ServerPort }}
metrics_enabled = {{ .MetricsEnabled }}

request_timeout_ms = {{ .RequestTimeoutMs }}
probe_timeout_ms = {{ .ProbeTimeoutMs }}
wallet_api_port = {{ .WalletApiPort }}
max_discovery_depth = {{ .MaxDiscoveryDepth }}
peer_scan_concurrency = {{ .PeerScanConcurrency }}
bad_peer_ttl_ms = {{ .BadPeerTtlMs }}

[networks]{{ range $k, $v := .Networks }}
	[networks.{{ $k }}]
	name = "{{ $v.Name }}"
	host = "{{ $v.Host }}"
	protocol = "{{ $v.Protocol }}"
	active_delegates = {{ $v.ActiveDelegates }}
	premined = "{{ $v.Premined }}"
{{ end }}
`

func Render(cfg *Ark) ([]byte, error) {
	tmpl, err := template.New("ark").Parse(ArkConfigTemplate)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, cfg); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Write(path string, cfg *Ark) error {
	bz, err := Render(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0644)
}
