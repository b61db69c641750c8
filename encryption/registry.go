// Copyright 2025 Wavemark Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package encryption

import "sync"

// Strategy registry. Applications register their strategy implementations
// at startup so configuration layers can resolve them by algorithm ID.

var (
	registryMutex sync.RWMutex
	registry      = map[string]Strategy{}
)

// Register makes a strategy resolvable by its algorithm ID. Registering a
// second strategy under the same ID is a configuration error.
func Register(strategy Strategy) error {
	if strategy == nil {
		return InvalidConfigurationError{Reason: "strategy cannot be nil"}
	}
	id := strategy.AlgorithmID()
	if id == "" {
		return InvalidConfigurationError{
			Reason: "strategy algorithm ID cannot be empty",
		}
	}
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := registry[id]; exists {
		return InvalidConfigurationError{
			Reason: "strategy '" + id + "' is already registered",
		}
	}
	registry[id] = strategy
	return nil
}

// Lookup returns the strategy registered under an algorithm ID.
func Lookup(algorithmID string) (Strategy, bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	strategy, ok := registry[algorithmID]
	return strategy, ok
}

// Deregister removes a strategy from the registry.
func Deregister(algorithmID string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(registry, algorithmID)
}
