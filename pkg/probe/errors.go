package probe

import "errors"

var (
	errProxyDialer = errors.New("proxy dialer does not support context dialing")
)
