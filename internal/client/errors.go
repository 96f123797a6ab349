package client

import "errors"

var errNoServices = errors.New("client app needs services")
