// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		BcryptCost   int    `json:"bcrypt_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`

		Avatars struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"avatars,omitempty"`

		Cache struct {
			Addr     string   `json:"addr"`
			Password string   `json:"password"`
			TokenTTL Duration `json:"token_ttl"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		APIKey    string `json:"api_key"`
		Sender    string `json:"sender"`
		QueueSize int    `json:"queue_size"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			BcryptCost:   jsonCfg.App.BcryptCost,
		},
		Storage: Storage{
			Mongo: Mongo{
				URI:      jsonCfg.Storage.Mongo.URI,
				Database: jsonCfg.Storage.Mongo.Database,
			},
			Avatars: Avatars{
				Endpoint:  jsonCfg.Storage.Avatars.Endpoint,
				AccessKey: jsonCfg.Storage.Avatars.AccessKey,
				SecretKey: jsonCfg.Storage.Avatars.SecretKey,
				Bucket:    jsonCfg.Storage.Avatars.Bucket,
				UseSSL:    jsonCfg.Storage.Avatars.UseSSL,
			},
			Cache: Cache{
				Addr:     jsonCfg.Storage.Cache.Addr,
				Password: jsonCfg.Storage.Cache.Password,
				TokenTTL: time.Duration(jsonCfg.Storage.Cache.TokenTTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			APIKey:    jsonCfg.Mail.APIKey,
			Sender:    jsonCfg.Mail.Sender,
			QueueSize: jsonCfg.Mail.QueueSize,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
