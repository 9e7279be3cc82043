/*
 * tokenspec - The token contract test harness
 *
 * Copyright The tokenspec Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package contracts

// ABIParam is one input or output of an ABI entry.
type ABIParam struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	InternalType string `json:"internalType,omitempty"`
	Indexed      *bool  `json:"indexed,omitempty"`
}

// ABIEntry is one element of a Solidity-style JSON ABI.
type ABIEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       *bool      `json:"anonymous,omitempty"`
}

// ABI describes the contract as JSON ABI entries: the constructor first,
// then events and functions sorted by name.
func (d *Definition) ABI() []ABIEntry {
	entries := make([]ABIEntry, 0, 1+len(d.events)+len(d.methods))

	entries = append(entries, ABIEntry{
		Type:            "constructor",
		Inputs:          abiParams(d.constructorInputs),
		StateMutability: string(Nonpayable),
	})

	for _, e := range sortedEvents(d.events) {
		inputs := make([]ABIParam, 0, len(e.Inputs))
		for _, input := range e.Inputs {
			indexed := input.Indexed
			inputs = append(inputs, ABIParam{
				Name:         input.Name,
				Type:         input.Type,
				InternalType: input.Type,
				Indexed:      &indexed,
			})
		}
		anonymous := false
		entries = append(entries, ABIEntry{
			Type:      "event",
			Name:      e.Name,
			Inputs:    inputs,
			Anonymous: &anonymous,
		})
	}

	for _, m := range sortedMethods(d.Methods()) {
		outputs := abiParams(m.Outputs)
		entries = append(entries, ABIEntry{
			Type:            "function",
			Name:            m.Name,
			Inputs:          abiParams(m.Inputs),
			Outputs:         outputs,
			StateMutability: string(m.Mutability),
		})
	}

	return entries
}

func abiParams(args []Arg) []ABIParam {
	params := make([]ABIParam, 0, len(args))
	for _, arg := range args {
		params = append(params, ABIParam{
			Name:         arg.Name,
			Type:         arg.Type,
			InternalType: arg.Type,
		})
	}
	return params
}
