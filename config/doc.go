// Copyright 2025 Poiesic Systems
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


// Package config holds the immutable run configuration for searchdiag.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables. The environment variable surface matches the
// Azure conventions the tool diagnoses against:
//
//	AZURE_AI_SEARCH_ENDPOINT            search service endpoint (required)
//	AZURE_AI_SEARCH_KEY                 search admin key (required)
//	AZURE_OPENAI_ENDPOINT               completion service endpoint (optional)
//	AZURE_OPENAI_KEY                    completion service key (optional)
//	AZURE_OPENAI_EMBEDDING_ENDPOINT     fallback for the endpoint above
//	AZURE_OPENAI_EMBEDDING_KEY          fallback for the key above
//	AZURE_OPENAI_COMPLETION_DEPLOYMENT  completion model deployment name
//	AZURE_OPENAI_EMBEDDING_DEPLOYMENT   embedding model deployment name
//	TEST_QUERY                          target query text
//	LOG_LEVEL                           debug, info, warn, error
//
// A missing search endpoint or key is the only fatal pre-run condition;
// everything else degrades to a reduced battery.
package config
